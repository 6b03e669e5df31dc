// Package state holds the latest presence fetch outcome shared between the
// poll goroutine and the UI.
//
// # Overview
//
// The poller is the only writer. After every fetch it calls Update with
// either a document or an error. The UI reads a Snapshot whenever it renders
// the header and the status dot.
//
// # Update Semantics
//
//	store.Update(doc, nil)
//	→ snapshot.Document = doc, HasDocument = true
//	→ LastError = nil, ConsecutiveFailures = 0
//
//	store.Update(nil, err)
//	→ snapshot.Document = <unchanged>
//	→ LastError = err, ConsecutiveFailures++
//
// A failed poll never clears what is on screen. Two failures in a row mark
// the snapshot offline.
//
// # Copies
//
// Both directions copy the activity slice, so the UI can hold a snapshot
// while the poller records the next fetch.
//
// The zero Store is ready to use.
package state
