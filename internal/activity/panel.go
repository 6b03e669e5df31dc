package activity

import (
	"time"

	"github.com/bsj5/profilecard/internal/lanyard"
	"github.com/bsj5/profilecard/internal/reconcile"
)

// Panel is the activity widget: generated items reconciled into an animated
// list. It belongs to the goroutine that renders it.
type Panel struct {
	list *reconcile.List[Card]
}

// NewPanel returns an empty panel. A zero timing uses the default durations.
func NewPanel(timing reconcile.Timing) *Panel {
	return &Panel{list: reconcile.NewList[Card](timing)}
}

// Apply generates the items of doc and reconciles them into the list.
func (p *Panel) Apply(doc lanyard.Document, now time.Time) []reconcile.Op {
	return p.list.Reconcile(Generate(doc), now)
}

// Advance runs transitions due at or before now.
func (p *Panel) Advance(now time.Time) int {
	return p.list.Advance(now)
}

// NextDue reports when the next delayed mutation is due.
func (p *Panel) NextDue() (time.Time, bool) {
	return p.list.NextDue()
}

// Animating reports whether anything is still moving at now.
func (p *Panel) Animating(now time.Time) bool {
	return p.list.Animating(now)
}

// Elements returns the mounted elements in display order.
func (p *Panel) Elements() []*reconcile.Element[Card] {
	return p.list.Elements()
}

// Current returns the first mounted card that is not fading out.
func (p *Panel) Current() (Card, bool) {
	for _, el := range p.list.Elements() {
		if !el.Removing() {
			return el.Content, true
		}
	}
	return Card{}, false
}

// Close unmounts everything and drops queued transitions.
func (p *Panel) Close() {
	p.list.Reset()
}
