// Package app is the composition root of profilecard.
//
// # Overview
//
// Run loads the configuration, opens the log file, builds the Lanyard client
// and the shared state.Store, and starts three goroutines around the Bubble
// Tea program:
//
//	┌──────────────┐   changed document   ┌──────────────┐
//	│   Poller     │ ───────────────────> │  ui.Model    │
//	│  (Run loop)  │   program.Send       │ (tea loop)   │
//	└──────┬───────┘                      └──────┬───────┘
//	       │ store.Update                        │ store.Snapshot
//	       v                                     v
//	┌─────────────────────────────────────────────────────┐
//	│                    state.Store                      │
//	└─────────────────────────────────────────────────────┘
//
//	config.Watch ──> ui.ProfileMsg on every edit of config.toml
//
// # Polling
//
// The Poller fetches the presence document once at start and then on a
// fixed interval. It keeps the last successful document and only forwards
// a document that differs from it, so an unchanged presence never touches
// the activity list. Failed polls are recorded in the store and logged, and
// the last document stays on screen. Manual refreshes from the UI are
// limited to one per second.
//
// # One-shot mode
//
// Once performs a single fetch and prints the generated items, as text or
// JSON. It is used by the "once" subcommand and never starts the TUI.
//
// # Error Handling
//
// Fatal (returned from Run): a config file that cannot be parsed, an
// unusable log file path, an invalid API base. Everything that happens while
// polling is logged and retried on the next tick.
package app
