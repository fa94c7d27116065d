// Package config provides configuration management for the pdfgen worker.
//
// Configuration is loaded from environment variables and validated on startup.
// All configuration options have sensible defaults for development.
//
// Templates are read from TEMPLATE_DIR laid out as <app>/<name>.hbs, with
// shared partials under TEMPLATE_DIR/partials. IMAGE_DIR holds the images
// served as data URIs by the image helper and RESOURCE_DIR the files returned
// by the resource helper; both may be missing. DEV_MODE reloads templates when
// they change on disk.
//
// Results are published to RESULT_STREAM, which must differ from STREAM_KEY,
// and failures to RESULT_STREAM + ".errors".
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
