// Package render turns render requests into HTML documents.
//
// A request names an app, a template and carries a JSON payload:
//
//	{
//	    "id": "3f9c...",
//	    "app": "sykepenger",
//	    "template": "soknad",
//	    "data": {"navn": "ola nordmann", "periode": {"fom": "2018-05-20", "tom": "2018-05-29"}}
//	}
//
// Example usage:
//
//	renderer := render.NewRenderer(store, engine, logger)
//	result, err := renderer.Render(ctx, req)
//	if err != nil {
//	    log.Printf("render failed (%s): %v", render.Classify(err), err)
//	}
//
// Payload numbers are kept as json.Number so that currency_no sees the digits
// the producer sent. Helper failures are classified by Classify into the kinds
// reported in error events: parse, missing_field, comparison_type, argument,
// template_not_found, invalid_request and render.
package render
