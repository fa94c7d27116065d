// Package template renders Handlebars documents with the helpers from package helpers.
//
// The engine wraps github.com/aymerick/raymond. Each template is parsed once
// and cached by source; the helpers it calls are bound to the compiled template
// with the exact parameter count raymond expects.
//
// Example usage:
//
//	registry := helpers.NewRegistry(helpers.Assets{})
//	engine := template.NewEngine(registry)
//
//	data := map[string]interface{}{
//	    "name":    "ola  nordmann",
//	    "born":    "1985-03-07",
//	    "amount":  json.Number("1234567.5"),
//	    "periode": map[string]interface{}{"fom": "2018-05-20", "tom": "2018-05-29"},
//	}
//
//	tmpl := `{{capitalize_names name}}, {{iso_to_long_date born}}: {{currency_no amount}} kr ({{json_to_period periode}})`
//	result, err := engine.Render(tmpl, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: Ola Nordmann, 7. mars 1985: 1 234 567,50 kr (20.05.2018 - 29.05.2018)
//
// The first argument of a helper call is its context; the rest are positional
// parameters and key=value pairs are named options:
//
//	{{insert_at account 4 7 divider="."}}      # "1234.56.78901"
//	{{#eq status "APPROVED"}}...{{else}}...{{/eq}}
//	{{#gt amount 1000}}...{{/gt}}
//	{{#contains_all tags "A" "B"}}...{{/contains_all}}
//
// Helper errors, such as an unparseable date, stop rendering and are returned
// from Render so that callers can inspect them with errors.As.
package template
