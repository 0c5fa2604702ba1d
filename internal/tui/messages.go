package tui

import (
	"github.com/mmcdole/flick/internal/domain"
)

// Message types for the TUI

// ContentLoadedMsg carries a page for one view. Seq identifies the load that
// produced it; the view drops it if a newer load has started.
type ContentLoadedMsg struct {
	View ViewKind
	Seq  uint64
	Page *domain.ResultPage
}

// ContentFailedMsg reports a failed load for one view
type ContentFailedMsg struct {
	View ViewKind
	Seq  uint64
	Err  error
}

// DetailsLoadedMsg carries the full record for an item
type DetailsLoadedMsg struct {
	ItemID  int
	Details *domain.Details
}

// DetailsFailedMsg reports a failed details lookup
type DetailsFailedMsg struct {
	ItemID int
	Err    error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
