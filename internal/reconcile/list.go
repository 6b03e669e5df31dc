package reconcile

import (
	"slices"
	"time"
)

// Item is one keyed entry of a generated set.
type Item[C comparable] struct {
	ID      string
	Content C
}

// Dedupe drops every item whose id already appeared earlier in items.
func Dedupe[C comparable](items []Item[C]) []Item[C] {
	if len(items) < 2 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]Item[C], 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Element is a mounted item. The pointer stays the same for as long as the
// item keeps its id, across content updates.
type Element[C comparable] struct {
	ID      string
	Content C

	target   Style
	trans    *transition
	removing bool
}

// StyleAt returns the interpolated style at now.
func (e *Element[C]) StyleAt(now time.Time) Style {
	if e.trans == nil {
		return e.target
	}
	return e.trans.at(now)
}

// Removing reports whether the element is fading out before detaching.
func (e *Element[C]) Removing() bool {
	return e.removing
}

func (e *Element[C]) animate(to Style, now time.Time, d time.Duration) {
	from := e.StyleAt(now)
	e.target = to
	e.trans = &transition{from: from, to: to, start: now, dur: d}
}

func (e *Element[C]) animating(now time.Time) bool {
	return e.trans != nil && !e.trans.done(now)
}

// OpKind classifies a reconcile operation.
type OpKind int

const (
	OpAdd OpKind = iota
	OpUpdate
	OpRemove
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Op records one mutation scheduled by Reconcile. Index is the position in
// the next set for adds and updates and the mounted position for removals.
type Op struct {
	Kind  OpKind
	ID    string
	Index int
}

// Timing holds the transition durations and delays.
type Timing struct {
	FadeOut         time.Duration
	Swap            time.Duration
	EnterDelay      time.Duration
	Enter           time.Duration
	Rearrange       time.Duration
	RearrangeSettle time.Duration
}

// DefaultTiming returns the stock transition timings.
func DefaultTiming() Timing {
	return Timing{
		FadeOut:         500 * time.Millisecond,
		Swap:            300 * time.Millisecond,
		EnterDelay:      50 * time.Millisecond,
		Enter:           500 * time.Millisecond,
		Rearrange:       500 * time.Millisecond,
		RearrangeSettle: 50 * time.Millisecond,
	}
}

const (
	exitShiftX  = -2
	enterShiftY = -2
	swapScale   = 0.95
)

// List is the live ordered container of mounted elements plus an id index.
// It is owned by a single goroutine; delayed mutations run from Advance.
type List[C comparable] struct {
	timing   Timing
	elements []*Element[C]
	index    map[string]*Element[C]
	sched    Scheduler
}

// NewList returns an empty list using timing. A zero Timing uses
// DefaultTiming.
func NewList[C comparable](timing Timing) *List[C] {
	if timing == (Timing{}) {
		timing = DefaultTiming()
	}
	return &List[C]{
		timing: timing,
		index:  make(map[string]*Element[C]),
	}
}

// Reconcile brings the list toward next and returns the operations it
// scheduled. Pending work from an earlier call is settled first, so two
// cycles never interleave. Transitions are not awaited: the visual end state
// is reached once Advance has been called past every pending due time.
func (l *List[C]) Reconcile(next []Item[C], now time.Time) []Op {
	l.sched.Flush()
	next = Dedupe(next)

	wanted := make(map[string]struct{}, len(next))
	for _, it := range next {
		wanted[it.ID] = struct{}{}
	}

	var ops []Op
	for pos, el := range slices.Clone(l.elements) {
		if _, ok := wanted[el.ID]; ok {
			continue
		}
		ops = append(ops, Op{Kind: OpRemove, ID: el.ID, Index: pos})
		l.fadeOutAndRemove(el, now)
	}

	for i, it := range next {
		if el, ok := l.index[it.ID]; ok {
			if el.Content == it.Content {
				continue
			}
			ops = append(ops, Op{Kind: OpUpdate, ID: it.ID, Index: i})
			l.update(el, it.Content, now)
			continue
		}
		ops = append(ops, Op{Kind: OpAdd, ID: it.ID, Index: i})
		l.add(it, i, now)
	}
	return ops
}

// Advance runs delayed mutations due at or before now.
func (l *List[C]) Advance(now time.Time) int {
	return l.sched.Advance(now)
}

// Settle runs every pending delayed mutation immediately.
func (l *List[C]) Settle() int {
	return l.sched.Flush()
}

// NextDue returns when the next delayed mutation is due.
func (l *List[C]) NextDue() (time.Time, bool) {
	return l.sched.Next()
}

// Pending reports the number of queued delayed mutations.
func (l *List[C]) Pending() int {
	return l.sched.Len()
}

// Animating reports whether a transition is in flight or work is queued.
func (l *List[C]) Animating(now time.Time) bool {
	if l.sched.Len() > 0 {
		return true
	}
	for _, el := range l.elements {
		if el.animating(now) {
			return true
		}
	}
	return false
}

// Elements returns the mounted elements in container order, including ones
// still fading out.
func (l *List[C]) Elements() []*Element[C] {
	return slices.Clone(l.elements)
}

// Items returns the mounted ids and contents in container order.
func (l *List[C]) Items() []Item[C] {
	out := make([]Item[C], 0, len(l.elements))
	for _, el := range l.elements {
		out = append(out, Item[C]{ID: el.ID, Content: el.Content})
	}
	return out
}

// Lookup returns the mounted element with id.
func (l *List[C]) Lookup(id string) (*Element[C], bool) {
	el, ok := l.index[id]
	return el, ok
}

// Len reports the number of mounted elements.
func (l *List[C]) Len() int {
	return len(l.elements)
}

// Reset unmounts everything and drops queued work.
func (l *List[C]) Reset() {
	l.sched.Clear()
	l.elements = nil
	clear(l.index)
}

func (l *List[C]) fadeOutAndRemove(el *Element[C], now time.Time) {
	el.removing = true
	to := el.target
	to.Opacity = 0
	to.DX = exitShiftX
	el.animate(to, now, l.timing.FadeOut)
	l.sched.After(now, l.timing.FadeOut, func(at time.Time) {
		l.detach(el)
		l.rearrange(at)
	})
}

func (l *List[C]) update(el *Element[C], content C, now time.Time) {
	out := el.target
	out.Opacity = 0
	out.Scale = swapScale
	el.animate(out, now, l.timing.Swap)
	l.sched.After(now, l.timing.Swap, func(at time.Time) {
		el.Content = content
		in := el.target
		in.Opacity = 1
		in.Scale = 1
		el.animate(in, at, l.timing.Swap)
	})
}

func (l *List[C]) add(it Item[C], index int, now time.Time) {
	el := &Element[C]{
		ID:      it.ID,
		Content: it.Content,
		target:  Style{Opacity: 0, DY: enterShiftY, Scale: 1},
	}
	l.insert(el, index)
	l.index[el.ID] = el
	l.sched.After(now, l.timing.EnterDelay, func(at time.Time) {
		to := el.target
		to.Opacity = 1
		to.DY = 0
		el.animate(to, at, l.timing.Enter)
	})
}

// insert places el at the head for index 0, otherwise right after the
// element holding position index-1 among elements that are not fading out.
// Without such a neighbour it appends.
func (l *List[C]) insert(el *Element[C], index int) {
	if index <= 0 {
		l.elements = slices.Insert(l.elements, 0, el)
		return
	}
	seen := 0
	for pos, cur := range l.elements {
		if cur.removing {
			continue
		}
		seen++
		if seen == index {
			l.elements = slices.Insert(l.elements, pos+1, el)
			return
		}
	}
	l.elements = append(l.elements, el)
}

func (l *List[C]) detach(el *Element[C]) {
	if pos := slices.Index(l.elements, el); pos >= 0 {
		l.elements = slices.Delete(l.elements, pos, pos+1)
	}
	if cur, ok := l.index[el.ID]; ok && cur == el {
		delete(l.index, el.ID)
	}
}

// rearrange lifts every remaining element by its index, then lets them all
// slide back to their slots.
func (l *List[C]) rearrange(now time.Time) {
	moved := slices.Clone(l.elements)
	for i, el := range moved {
		to := el.target
		to.DY = -float64(i)
		el.animate(to, now, l.timing.Rearrange)
	}
	l.sched.After(now, l.timing.RearrangeSettle, func(at time.Time) {
		for _, el := range moved {
			if cur, ok := l.index[el.ID]; !ok || cur != el {
				continue
			}
			to := el.target
			to.DY = 0
			el.animate(to, at, l.timing.Rearrange)
		}
	})
}
