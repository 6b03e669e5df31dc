// Package reconcile keeps a small ordered list of keyed, animated elements in
// agreement with a freshly generated item set.
//
// # Overview
//
// List is the live container. It holds mounted elements in display order and
// an id index, and it is the only source of truth for what is on screen. A
// call to Reconcile diffs the mounted elements against the next set by id in
// a single pass:
//
//   - ids missing from the next set fade out and slide left, then detach after
//     the fade delay; the survivors are rearranged (lifted by their index and
//     slid back into place)
//   - ids present in both are compared by content; unequal content fades and
//     shrinks out, swaps, then fades back in; equal content is left untouched
//   - new ids are created invisible and lifted, inserted at the head (index 0)
//     or right after the element holding the preceding position, and fade in
//     after a short delay
//
// This is not a minimal-edit-distance diff. Mounted elements are never moved
// relative to each other; only inserts choose a position.
//
// # Identity
//
// Elements are pointers. An update never replaces the *Element, it swaps its
// Content in place, so callers holding an element keep holding the same one.
//
// # Timing
//
// Reconcile returns immediately. Every delayed mutation is queued on a
// Scheduler owned by the list and runs only when the owner calls Advance with
// the current time. In the UI that happens on an animation tick message, so
// every mutation runs on the Bubble Tea event loop.
//
// Before diffing, Reconcile settles anything still queued from the previous
// cycle. Two cycles therefore never interleave half-applied adds, swaps and
// detaches, however short the poll interval gets.
//
// Visual state is a Style (opacity, offsets, scale) interpolated by
// Element.StyleAt between the style at the start of a transition and its
// target.
//
// # Duplicate ids
//
// The first item with a given id wins; later duplicates are dropped before
// diffing (see Dedupe).
//
// # Concurrency
//
// A List is not safe for concurrent use. It is owned by exactly one goroutine.
package reconcile
