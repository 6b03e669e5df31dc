package ui

import "time"

// Card geometry, in terminal cells.
const (
	// CardWidth is the outer width of the profile card.
	CardWidth = 60

	// activityIndent is the resting left offset of an activity element.
	activityIndent = 2

	// activityGap is the resting blank line above an activity element.
	activityGap = 1
)

// Timing constants.
const (
	// frameInterval paces animation frames while a transition is in flight.
	frameInterval = 33 * time.Millisecond

	// statusInterval is how often the header re-reads the state store.
	statusInterval = time.Second

	// flashDuration is how long a transient header message stays up.
	flashDuration = 3 * time.Second
)

// LogTailLines is the number of log lines the log overlay keeps.
const LogTailLines = 200
