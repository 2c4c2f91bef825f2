// Package app is the composition root for Stockroom.
//
// # Overview
//
// It resolves configuration, builds the inventory and catalog lookup clients,
// and then either runs a single command or starts the scanning station.
//
// # Components
//
//   - app.go: setup and the Run function that starts the TUI
//   - poller.go: background goroutine that lists stock into state.Store
//   - commands.go: one-shot CLI commands (add, remove, count, list, shelf-*, lookup, check, import)
//   - importer.go: bulk import of "upc[,shelf]" lines with a progress bar
//
// # Data Flow
//
//	Exec(args)
//	  ├─> config.Load()            file, .env, environment
//	  ├─> inventory.NewClient()    stocking and shelf API
//	  ├─> upc.NewLookupClient()    catalog lookup
//	  └─> command | Run()
//	              ├─> StartPoller()  ListStock -> store.Update()
//	              └─> ui.Run()       blocks until quit or cancel
//
// # Polling Behavior
//
// The poller lists the first stock page every interval (default 2 seconds).
// Failures are logged and recorded on the store; the wait doubles per
// consecutive failure up to 30 seconds and resets on the first success.
//
// # Error Handling
//
// Configuration and client construction errors are returned from Exec and Run.
// Command errors wrap ErrUsage when the arguments were wrong, so the caller
// can print usage. Poll failures never stop the TUI.
package app
