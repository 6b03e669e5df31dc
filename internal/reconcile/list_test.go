package reconcile

import (
	"slices"
	"testing"
	"time"
)

var epoch = time.Unix(1_700_000_000, 0)

func items(pairs ...string) []Item[string] {
	out := make([]Item[string], 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Item[string]{ID: pairs[i], Content: pairs[i+1]})
	}
	return out
}

func ids(l *List[string]) []string {
	var out []string
	for _, it := range l.Items() {
		out = append(out, it.ID)
	}
	return out
}

func mounted(t *testing.T, next []Item[string]) *List[string] {
	t.Helper()
	l := NewList[string](Timing{})
	l.Reconcile(next, epoch)
	l.Settle()
	return l
}

func TestReconcile_AddAnimatesIn(t *testing.T) {
	l := NewList[string](Timing{})

	ops := l.Reconcile(items("a", "X"), epoch)
	if len(ops) != 1 || ops[0] != (Op{Kind: OpAdd, ID: "a", Index: 0}) {
		t.Fatalf("ops = %v, want [add a 0]", ops)
	}
	el, ok := l.Lookup("a")
	if !ok {
		t.Fatalf("element a not mounted")
	}
	if st := el.StyleAt(epoch); st.Opacity != 0 || st.DY != enterShiftY {
		t.Fatalf("initial style = %+v, want invisible and lifted", st)
	}
	if !l.Animating(epoch) {
		t.Fatalf("Animating = false, want true while enter is queued")
	}

	l.Advance(epoch.Add(50 * time.Millisecond))
	mid := el.StyleAt(epoch.Add(300 * time.Millisecond))
	if mid.Opacity <= 0 || mid.Opacity >= 1 {
		t.Fatalf("mid-transition opacity = %v, want between 0 and 1", mid.Opacity)
	}
	end := epoch.Add(time.Second)
	if st := el.StyleAt(end); st != Resting {
		t.Fatalf("resting style = %+v, want %+v", st, Resting)
	}
	if l.Animating(end) {
		t.Fatalf("Animating = true after transitions finished")
	}
}

func TestReconcile_IdenticalSetIsNoop(t *testing.T) {
	l := mounted(t, items("a", "X", "b", "Y"))
	before := l.Elements()

	ops := l.Reconcile(items("a", "X", "b", "Y"), epoch.Add(5*time.Second))
	if len(ops) != 0 {
		t.Fatalf("ops = %v, want none", ops)
	}
	if l.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", l.Pending())
	}
	after := l.Elements()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("element %d replaced on no-op reconcile", i)
		}
	}
}

func TestReconcile_UpdateKeepsElementIdentity(t *testing.T) {
	l := mounted(t, items("a", "X"))
	el, _ := l.Lookup("a")

	now := epoch.Add(5 * time.Second)
	ops := l.Reconcile(items("a", "Y"), now)
	if len(ops) != 1 || ops[0].Kind != OpUpdate {
		t.Fatalf("ops = %v, want one update", ops)
	}
	if el.Content != "X" {
		t.Fatalf("content swapped before fade-out finished: %q", el.Content)
	}
	if st := el.StyleAt(now.Add(300 * time.Millisecond)); st.Opacity != 0 || st.Scale != swapScale {
		t.Fatalf("faded style = %+v, want opacity 0 scale %v", st, swapScale)
	}

	l.Advance(now.Add(300 * time.Millisecond))
	got, _ := l.Lookup("a")
	if got != el {
		t.Fatalf("update replaced the element instead of reusing it")
	}
	if el.Content != "Y" {
		t.Fatalf("content = %q, want Y", el.Content)
	}
	if st := el.StyleAt(now.Add(time.Second)); st != Resting {
		t.Fatalf("style after swap = %+v, want %+v", st, Resting)
	}
}

func TestReconcile_EmptyNextRemovesEverything(t *testing.T) {
	l := mounted(t, items("a", "X", "b", "Y"))

	now := epoch.Add(5 * time.Second)
	ops := l.Reconcile(nil, now)
	if len(ops) != 2 || ops[0].Kind != OpRemove || ops[1].Kind != OpRemove {
		t.Fatalf("ops = %v, want two removals", ops)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want elements still mounted while fading", l.Len())
	}
	for _, el := range l.Elements() {
		if !el.Removing() {
			t.Fatalf("element %s not marked removing", el.ID)
		}
	}

	l.Advance(now.Add(499 * time.Millisecond))
	if l.Len() != 2 {
		t.Fatalf("Len = %d before fade delay, want 2", l.Len())
	}
	l.Advance(now.Add(500 * time.Millisecond))
	if l.Len() != 0 {
		t.Fatalf("Len = %d after fade delay, want 0", l.Len())
	}
	if _, ok := l.Lookup("a"); ok {
		t.Fatalf("removed element still indexed")
	}
	l.Advance(now.Add(time.Second))
	if l.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", l.Pending())
	}
}

func TestReconcile_InsertsAfterPrecedingNeighbour(t *testing.T) {
	l := mounted(t, items("a", "1", "c", "3"))

	ops := l.Reconcile(items("a", "1", "b", "2", "c", "3"), epoch.Add(time.Second))
	if len(ops) != 1 || ops[0] != (Op{Kind: OpAdd, ID: "b", Index: 1}) {
		t.Fatalf("ops = %v, want [add b 1]", ops)
	}
	if got := ids(l); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("order = %v, want [a b c]", got)
	}

	l.Reconcile(items("z", "0", "a", "1", "b", "2", "c", "3"), epoch.Add(2*time.Second))
	if got := ids(l); !slices.Equal(got, []string{"z", "a", "b", "c"}) {
		t.Fatalf("order = %v, want z prepended", got)
	}
}

func TestReconcile_NeighbourSkipsFadingElements(t *testing.T) {
	l := mounted(t, items("a", "1", "b", "2"))

	now := epoch.Add(time.Second)
	l.Reconcile(items("b", "2", "c", "3"), now)
	if got := ids(l); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("order while a fades = %v, want [a b c]", got)
	}
	l.Advance(now.Add(time.Second))
	if got := ids(l); !slices.Equal(got, []string{"b", "c"}) {
		t.Fatalf("order = %v, want [b c]", got)
	}
}

func TestInsert_FallsBackToAppend(t *testing.T) {
	l := NewList[string](Timing{})
	l.insert(&Element[string]{ID: "a"}, 0)
	l.insert(&Element[string]{ID: "b"}, 5)
	if got := ids(l); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("order = %v, want [a b]", got)
	}
}

func TestReconcile_RemovalRearrangesRemaining(t *testing.T) {
	l := mounted(t, items("a", "1", "b", "2", "c", "3"))
	b, _ := l.Lookup("b")
	c, _ := l.Lookup("c")

	now := epoch.Add(time.Second)
	l.Reconcile(items("b", "2", "c", "3"), now)

	l.Advance(now.Add(500 * time.Millisecond))
	if b.target.DY != 0 || c.target.DY != -1 {
		t.Fatalf("rearrange targets b=%v c=%v, want 0 and -1", b.target.DY, c.target.DY)
	}
	l.Advance(now.Add(550 * time.Millisecond))
	if c.target.DY != 0 {
		t.Fatalf("c target after settle = %v, want 0", c.target.DY)
	}
	if st := c.StyleAt(now.Add(2 * time.Second)); st != Resting {
		t.Fatalf("c style = %+v, want %+v", st, Resting)
	}
}

func TestReconcile_DuplicateIDsFirstWins(t *testing.T) {
	l := mounted(t, items("a", "first", "a", "second"))
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
	el, _ := l.Lookup("a")
	if el.Content != "first" {
		t.Fatalf("content = %q, want first", el.Content)
	}
}

func TestReconcile_SettlesPreviousCycleFirst(t *testing.T) {
	l := NewList[string](Timing{})
	l.Reconcile(items("a", "X"), epoch)
	l.Settle()

	l.Reconcile(items("a", "Y"), epoch.Add(10*time.Millisecond))
	el, _ := l.Lookup("a")
	if el.Content != "X" {
		t.Fatalf("content = %q, want X until the swap runs", el.Content)
	}

	ops := l.Reconcile(nil, epoch.Add(20*time.Millisecond))
	if el.Content != "Y" {
		t.Fatalf("pending swap was not applied before the next cycle: %q", el.Content)
	}
	if len(ops) != 1 || ops[0].Kind != OpRemove {
		t.Fatalf("ops = %v, want one removal", ops)
	}
}

func TestReset_DropsEverything(t *testing.T) {
	l := NewList[string](Timing{})
	l.Reconcile(items("a", "X"), epoch)
	l.Reset()
	if l.Len() != 0 || l.Pending() != 0 {
		t.Fatalf("Len=%d Pending=%d after Reset, want 0/0", l.Len(), l.Pending())
	}
	if _, ok := l.Lookup("a"); ok {
		t.Fatalf("Lookup found element after Reset")
	}
}

func TestDedupe(t *testing.T) {
	in := items("a", "1", "b", "2", "a", "3")
	got := Dedupe(in)
	if !slices.Equal(got, items("a", "1", "b", "2")) {
		t.Fatalf("Dedupe = %v", got)
	}
	if len(in) != 3 {
		t.Fatalf("Dedupe mutated its input")
	}
}
