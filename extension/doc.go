// Package extension provides the Forge extension for mounting Agenda.
//
// The extension integrates Agenda into a Forge application by:
//   - Building the Agenda instance from a configured store
//   - Running store migrations on Init
//   - Mounting the event routes with OpenAPI metadata under a configurable prefix
//   - Exposing the plain net/http handler (JSON API, calendar feed, form UI)
//   - Closing the store on Stop
//
// Usage:
//
//	ext := extension.New(
//	    extension.WithStore(mongoStore),
//	    extension.WithPrefix("/agenda"),
//	)
//	if err := ext.Init(ctx); err != nil {
//	    return err
//	}
//	ext.RegisterRoutes(app.Router(), app.Logger())
package extension
