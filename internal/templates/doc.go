// Package templates loads document templates from disk.
//
// Templates live under one directory per app:
//
//	templates/
//	    partials/footer.hbs
//	    sykepenger/soknad.hbs
//	    sykepenger/vedtak.hbs
//
// The partials directory is shared by every app and its files are registered
// as partials under their base name ({{> footer}}).
//
// Example usage:
//
//	store := templates.NewStore("templates", logger)
//	if err := store.Load(); err != nil {
//	    log.Fatal(err)
//	}
//	src, err := store.Get("sykepenger", "soknad")
//
// In development the store can reload itself when a file changes:
//
//	store.Watch(ctx, func() { engine.SetPartials(store.Partials()) })
package templates
