// Package helpers implements the formatting and predicate helpers used by
// document templates.
//
// Helpers are plain functions over an Invocation (context value, positional
// parameters, named options) and return either text or a branch decision for
// block helpers. They know nothing about the template engine; package
// internal/eval/template binds them to raymond.
//
// Example usage:
//
//	registry := helpers.NewRegistry(helpers.Assets{
//	    Images: map[string]string{"logo.png": "data:image/png;base64,..."},
//	})
//
//	res, err := registry.Invoke("currency_no", &helpers.Invocation{
//	    Context: "1234567.5",
//	})
//	// res.Text == "1 234 567,50"
//
// Helpers:
//   - iso_to_nor_date, iso_to_nor_datetime, iso_to_date, iso_to_long_date - dates (nb-NO)
//   - duration - days between two ISO dates
//   - json_to_period - "fom - tom" from a period object
//   - currency_no, formatComma, inc - numbers
//   - capitalize, capitalize_names, breaklines, insert_at - text
//   - eq, not_eq, gt, lt, any, is_defined, contains_field, contains_all - block predicates
//   - image, resource, safe - asset lookup and unescaped output
//
// An absent context is never an error: text helpers return "" and predicates
// treat it as false. Malformed input (a date that matches no layout, a period
// without "tom", operands that cannot be ordered) returns a typed error.
package helpers
