package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutUpdatedWidth is the minimum width to show the updated timestamp.
	LayoutUpdatedWidth = 120
)

// Timing constants.
const (
	// NoticeTTL is how long a scan notice stays on screen.
	NoticeTTL = 8 * time.Second

	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)
