package reconcile

import "time"

// Style is the visual state of a mounted element. Offsets are in terminal
// cells; negative DX slides left, negative DY lifts the element up.
type Style struct {
	Opacity float64
	DX      float64
	DY      float64
	Scale   float64
}

// Resting is the style of a fully visible element at its slot.
var Resting = Style{Opacity: 1, Scale: 1}

type transition struct {
	from  Style
	to    Style
	start time.Time
	dur   time.Duration
}

func (t transition) at(now time.Time) Style {
	if t.dur <= 0 || !now.Before(t.start.Add(t.dur)) {
		return t.to
	}
	if now.Before(t.start) {
		return t.from
	}
	p := easeOut(float64(now.Sub(t.start)) / float64(t.dur))
	return Style{
		Opacity: lerp(t.from.Opacity, t.to.Opacity, p),
		DX:      lerp(t.from.DX, t.to.DX, p),
		DY:      lerp(t.from.DY, t.to.DY, p),
		Scale:   lerp(t.from.Scale, t.to.Scale, p),
	}
}

func (t transition) done(now time.Time) bool {
	return !now.Before(t.start.Add(t.dur))
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

func easeOut(p float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	}
	inv := 1 - p
	return 1 - inv*inv
}
