package render

import (
	"errors"

	"github.com/aescanero/dago-node-pdfgen/internal/helpers"
	"github.com/aescanero/dago-node-pdfgen/internal/templates"
)

// ErrorKind names the class of a render failure in published error events
type ErrorKind string

const (
	KindParse            ErrorKind = "parse"
	KindMissingField     ErrorKind = "missing_field"
	KindComparisonType   ErrorKind = "comparison_type"
	KindArgument         ErrorKind = "argument"
	KindTemplateNotFound ErrorKind = "template_not_found"
	KindInvalidRequest   ErrorKind = "invalid_request"
	KindRender           ErrorKind = "render"
)

// Classify maps an error returned by Render to its kind
func Classify(err error) ErrorKind {
	var (
		parseErr      *helpers.ParseError
		missingErr    *helpers.MissingFieldError
		comparisonErr *helpers.ComparisonTypeError
		argumentErr   *helpers.ArgumentError
	)

	switch {
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &missingErr):
		return KindMissingField
	case errors.As(err, &comparisonErr):
		return KindComparisonType
	case errors.As(err, &argumentErr):
		return KindArgument
	case errors.Is(err, templates.ErrTemplateNotFound):
		return KindTemplateNotFound
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	default:
		return KindRender
	}
}
