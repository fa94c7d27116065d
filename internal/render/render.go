package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aescanero/dago-node-pdfgen/internal/eval/template"
	"go.uber.org/zap"
)

// ErrInvalidRequest is returned for requests missing the app or template name
var ErrInvalidRequest = errors.New("invalid render request")

// Request asks for one template to be rendered with a JSON payload
type Request struct {
	ID       string          `json:"id"`
	App      string          `json:"app"`
	Template string          `json:"template"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Result is a rendered document
type Result struct {
	ID       string        `json:"id"`
	App      string        `json:"app"`
	Template string        `json:"template"`
	HTML     string        `json:"html"`
	Duration time.Duration `json:"duration"`
}

// TemplateSource resolves template sources by app and name
type TemplateSource interface {
	Get(app, name string) (string, error)
}

// Renderer turns render requests into HTML
type Renderer struct {
	templates TemplateSource
	engine    *template.Engine
	logger    *zap.Logger
}

// NewRenderer creates a new renderer
func NewRenderer(templates TemplateSource, engine *template.Engine, logger *zap.Logger) *Renderer {
	return &Renderer{
		templates: templates,
		engine:    engine,
		logger:    logger,
	}
}

// Render renders the requested template with the request payload
func (r *Renderer) Render(ctx context.Context, req *Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	r.logger.Debug("render request",
		zap.String("id", req.ID),
		zap.String("app", req.App),
		zap.String("template", req.Template),
	)

	src, err := r.templates.Get(req.App, req.Template)
	if err != nil {
		return nil, err
	}

	data, err := decodeData(req.Data)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	html, err := r.engine.Render(src, data)
	if err != nil {
		r.logger.Error("render failed",
			zap.String("id", req.ID),
			zap.String("app", req.App),
			zap.String("template", req.Template),
			zap.String("kind", string(Classify(err))),
			zap.Error(err),
		)
		return nil, err
	}
	elapsed := time.Since(start)

	r.logger.Info("rendered document",
		zap.String("id", req.ID),
		zap.String("app", req.App),
		zap.String("template", req.Template),
		zap.Int("bytes", len(html)),
		zap.Duration("duration", elapsed),
	)

	return &Result{
		ID:       req.ID,
		App:      req.App,
		Template: req.Template,
		HTML:     html,
		Duration: elapsed,
	}, nil
}

// validateRequest validates the render request
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}
	if req.App == "" {
		return fmt.Errorf("%w: app is required", ErrInvalidRequest)
	}
	if req.Template == "" {
		return fmt.Errorf("%w: template is required", ErrInvalidRequest)
	}
	return nil
}

// decodeData decodes the payload keeping numbers as json.Number, so amounts
// reach the helpers with their original digits
func decodeData(raw json.RawMessage) (interface{}, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]interface{}{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode data: %v", ErrInvalidRequest, err)
	}
	return data, nil
}
