// Package app is the composition root for lexicon.
//
// It loads configuration, builds the document store client, verifies the
// store is reachable and hands a mounted dictionary to the UI. The same
// wiring backs the one-shot CLI commands.
//
// # Entry Points
//
//   - Run: the interactive TUI. Blocks until the user quits or ctx ends.
//   - Serve: the SQLite-backed document store over HTTP and websockets.
//   - List: waits for the first live push and returns the grouped word list.
//   - Add: creates one word through the same controller the TUI uses.
//
// # Startup
//
//	Run()
//	  ├─> config.Load()              Read ~/.config/lexicon/config.toml
//	  ├─> prefs.Load()               Theme and layout
//	  ├─> docstore.NewClient()       HTTP/websocket client
//	  ├─> ensureStoreAvailable()     Health check, 3 second timeout
//	  ├─> dictionary.New().Mount()   Delayed live subscription
//	  └─> ui.Run()                   Bubble Tea program (blocks)
//
// # Error Handling
//
// Configuration errors and an unreachable store are fatal and returned from
// the entry points. Once running, store failures surface as notifications and
// the dictionary keeps resubscribing with backoff.
package app
