// Package view holds the render-free state shared by the trending and search
// grids: a single-load state machine plus pointer focus and selection.
package view

import "github.com/mmcdole/flick/internal/domain"

// Status is the load phase of a view
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

// String returns a human-readable representation of the status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusReady:
		return "Ready"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// State is owned by exactly one view. Transitions return a new value so they
// can be tested without a renderer.
type State struct {
	Status       Status
	Items        []domain.ContentItem // API response order
	ErrorMessage string               // Set only when Failed
	HoveredID    int                  // 0 = nothing under focus
	Selected     *domain.ContentItem  // Drives the playback modal
	Query        string               // Input that triggered the current load
	Seq          uint64               // Bumped on every Begin/Reset
}

// Begin starts a fresh load for query and returns the sequence token the
// response must carry. Anything from a previous load is discarded.
func (s State) Begin(query string) (State, uint64) {
	seq := s.Seq + 1
	return State{
		Status: StatusLoading,
		Query:  query,
		Seq:    seq,
	}, seq
}

// Reset returns to Idle and invalidates any in-flight response
func (s State) Reset() State {
	return State{Status: StatusIdle, Seq: s.Seq + 1}
}

// IsCurrent reports whether a response tagged with seq may still be applied
func (s State) IsCurrent(seq uint64) bool {
	return seq == s.Seq && s.Status == StatusLoading
}

// Resolve applies a successful response. Stale or duplicate responses leave
// the state unchanged.
func (s State) Resolve(seq uint64, items []domain.ContentItem) State {
	if !s.IsCurrent(seq) {
		return s
	}
	s.Status = StatusReady
	s.Items = items
	if s.Items == nil {
		s.Items = []domain.ContentItem{}
	}
	s.ErrorMessage = ""
	return s
}

// Reject applies a failed response with a user-facing message. Stale
// responses leave the state unchanged.
func (s State) Reject(seq uint64, message string) State {
	if !s.IsCurrent(seq) {
		return s
	}
	s.Status = StatusFailed
	s.Items = nil
	s.ErrorMessage = message
	return s
}

// HoverEnter puts id under focus, replacing whatever was focused before
func (s State) HoverEnter(id int) State {
	s.HoveredID = id
	return s
}

// HoverLeave clears focus only when id is the focused item. A late leave
// from a neighbouring card must not clear the card that was just entered.
func (s State) HoverLeave(id int) State {
	if s.HoveredID == id {
		s.HoveredID = 0
	}
	return s
}

// Select opens playback for item
func (s State) Select(item domain.ContentItem) State {
	s.Selected = &item
	return s
}

// CloseSelection clears the playback selection
func (s State) CloseSelection() State {
	s.Selected = nil
	return s
}

// Item returns the item with id, if loaded
func (s State) Item(id int) (domain.ContentItem, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.ContentItem{}, false
}

// HoveredItem returns the focused item, if any
func (s State) HoveredItem() (domain.ContentItem, bool) {
	if s.HoveredID == 0 {
		return domain.ContentItem{}, false
	}
	return s.Item(s.HoveredID)
}

// IsHovered reports whether id is the focused item
func (s State) IsHovered(id int) bool {
	return id != 0 && s.HoveredID == id
}
