package render

import (
	"fmt"

	"github.com/aescanero/dago-node-pdfgen/internal/eval/template"
)

// TemplateWalker visits every known template
type TemplateWalker interface {
	Walk(fn func(app, name, src string) error) error
}

// ValidateTemplates compiles every template against the engine's helpers and
// partials, so parse errors and conflicting helper arities surface before the
// first request
func ValidateTemplates(templates TemplateWalker, engine *template.Engine) error {
	return templates.Walk(func(app, name, src string) error {
		if err := engine.ValidateTemplate(src); err != nil {
			return fmt.Errorf("invalid template %s/%s: %w", app, name, err)
		}
		return nil
	})
}
