package reconcile

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"pgregory.net/rapid"
)

var (
	idPool      = []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	contentPool = []string{"X", "Y", "Z"}
)

// drawNext keeps a random subsequence of cur (so survivors keep their
// relative order), re-draws their contents, inserts fresh ids at random
// positions and sometimes appends a duplicate id.
func drawNext(t *rapid.T, cur []Item[string]) []Item[string] {
	used := make(map[string]bool, len(cur))
	var next []Item[string]
	for i, it := range cur {
		used[it.ID] = true
		if rapid.Bool().Draw(t, fmt.Sprintf("keep_%d", i)) {
			next = append(next, Item[string]{
				ID:      it.ID,
				Content: rapid.SampledFrom(contentPool).Draw(t, "content"),
			})
		}
	}

	fresh := rapid.IntRange(0, 3).Draw(t, "fresh")
	for k := 0; k < fresh; k++ {
		id := rapid.SampledFrom(idPool).Draw(t, "fresh_id")
		if used[id] {
			continue
		}
		used[id] = true
		pos := rapid.IntRange(0, len(next)).Draw(t, "fresh_pos")
		next = slices.Insert(next, pos, Item[string]{
			ID:      id,
			Content: rapid.SampledFrom(contentPool).Draw(t, "content"),
		})
	}

	if len(next) > 0 && rapid.Bool().Draw(t, "duplicate") {
		dup := next[rapid.IntRange(0, len(next)-1).Draw(t, "dup_of")]
		dup.Content = "dup"
		next = append(next, dup)
	}
	return next
}

// Property: after a reconcile settles, the mounted list equals the deduped
// next set, surviving ids keep their element, and repeating the same set is
// a no-op.
func TestReconcileProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		l := NewList[string](Timing{})
		now := epoch

		steps := rapid.IntRange(1, 8).Draw(rt, "steps")
		for step := 0; step < steps; step++ {
			before := make(map[string]*Element[string])
			for _, el := range l.Elements() {
				before[el.ID] = el
			}

			next := drawNext(rt, l.Items())
			want := Dedupe(next)

			l.Reconcile(next, now)
			l.Settle()

			if got := l.Items(); !slices.Equal(got, want) {
				rt.Fatalf("step %d: mounted %v, want %v", step, got, want)
			}
			for _, it := range want {
				prev, ok := before[it.ID]
				if !ok {
					continue
				}
				if el, _ := l.Lookup(it.ID); el != prev {
					rt.Fatalf("step %d: element %s was replaced", step, it.ID)
				}
			}

			now = now.Add(2 * time.Second)
			if ops := l.Reconcile(next, now); len(ops) != 0 {
				rt.Fatalf("step %d: repeat reconcile produced %v", step, ops)
			}
			if l.Pending() != 0 {
				rt.Fatalf("step %d: repeat reconcile queued %d tasks", step, l.Pending())
			}
			for _, el := range l.Elements() {
				if st := el.StyleAt(now.Add(time.Second)); st != Resting {
					rt.Fatalf("step %d: element %s style %+v, want resting", step, el.ID, st)
				}
			}
			now = now.Add(2 * time.Second)
		}
	})
}
