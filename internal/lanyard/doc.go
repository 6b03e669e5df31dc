// Package lanyard provides an HTTP client for the Lanyard presence API.
//
// # Overview
//
// Lanyard exposes a Discord user's presence (online status, profile and the
// current activity list) as JSON at GET /v1/users/{id}. profilecard reads it
// on a fixed cadence; this package turns one response into a typed Document.
//
// # Types
//
// The JSON payload is decoded into unexported wire structs and then validated
// into Document, Presence, User and Activity. Activity is a tagged variant:
// Kind is derived from the activity name at decode time and Activity.Spotify
// exposes the listening fields (track title, artist, album art reference and
// track id) only for the Spotify kind.
//
// A response with "success": false decodes without error into a Document whose
// Success flag is false. Callers treat it like an empty activity list.
//
// # Errors
//
//   - ErrNoUser: no user id was configured; no request is made
//   - ErrNetwork: transport failure or a non-2xx status
//   - ErrParse: invalid JSON or a payload missing the expected shape
//
// Errors are wrapped with context, so match with errors.Is:
//
//	doc, err := client.FetchPresence(ctx, userID)
//	switch {
//	case errors.Is(err, lanyard.ErrNetwork):
//		// skip this tick
//	case errors.Is(err, lanyard.ErrParse):
//		// skip this tick, log the payload problem
//	}
//
// # Equality
//
// Document.Equal compares the decoded fields only. Fields of the payload that
// profilecard does not decode (timestamps, KV store, platform flags) never
// cause a redraw.
//
// The client has no retries and no caching. The poll loop decides cadence.
package lanyard
