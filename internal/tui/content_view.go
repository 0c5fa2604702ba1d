package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/components"
	"github.com/mmcdole/flick/internal/tui/styles"
	"github.com/mmcdole/flick/internal/view"
)

// ViewKind identifies one of the content tabs
type ViewKind int

const (
	ViewTrending ViewKind = iota
	ViewPopular
	ViewSearch
)

// String returns the tab label
func (k ViewKind) String() string {
	switch k {
	case ViewTrending:
		return "Trending"
	case ViewPopular:
		return "Popular TV"
	case ViewSearch:
		return "Search"
	default:
		return "Unknown"
	}
}

// ParseViewKind maps a configured view name to a kind. Unknown names fall
// back to trending.
func ParseViewKind(name string) ViewKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "popular":
		return ViewPopular
	case "search":
		return ViewSearch
	default:
		return ViewTrending
	}
}

// User-facing messages. Error details go to the log only.
const (
	trendingFailedText = "Failed to fetch trending content. Please try again later."
	searchFailedText   = "Failed to fetch search results. Please try again."
	emptyListingText   = "No content available. Please try again later."
	searchIdleText     = "Type s to search the catalog"
	listingIdleText    = "Press r to load"
	loadingText        = "Loading..."
)

// ContentView is one tab: a load state plus the grid that renders it.
// Trending and popular load a fixed listing; search loads whatever the
// current query is.
type ContentView struct {
	kind  ViewKind
	State view.State
	Grid  components.Grid

	// Deadline for each load; 0 defers to the catalog client
	Timeout time.Duration
}

// NewContentView creates an idle view. Only listings offer add-to-collection.
func NewContentView(kind ViewKind, images domain.ImageConfig, columns int) *ContentView {
	return &ContentView{
		kind: kind,
		Grid: components.NewGrid(images, columns, kind != ViewSearch),
	}
}

// Kind returns which tab this view is
func (v *ContentView) Kind() ViewKind {
	return v.kind
}

// Mount starts a fresh load, discarding any previous result or failure.
// A search view without a query goes back to idle instead.
func (v *ContentView) Mount(catalog domain.Catalog) tea.Cmd {
	if v.kind == ViewSearch && v.State.Query == "" {
		v.State = v.State.Reset()
		v.Grid.Reset()
		return nil
	}
	var seq uint64
	v.State, seq = v.State.Begin(v.State.Query)
	v.Grid.Reset()
	return LoadContentCmd(catalog, v.kind, seq, v.State.Query, v.Timeout)
}

// SetQuery drives the search view. A blank query returns to idle without a
// request; resubmitting the current query does nothing.
func (v *ContentView) SetQuery(catalog domain.Catalog, query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query != "" && query == v.State.Query && v.State.Status != view.StatusIdle {
		return nil
	}
	v.State.Query = query
	return v.Mount(catalog)
}

// ApplyLoaded applies a page if it belongs to the current load
func (v *ContentView) ApplyLoaded(msg ContentLoadedMsg) bool {
	if !v.State.IsCurrent(msg.Seq) {
		return false
	}
	var items []domain.ContentItem
	if msg.Page != nil {
		items = msg.Page.Results
	}
	v.State = v.State.Resolve(msg.Seq, items)
	return true
}

// ApplyFailed records a failure if it belongs to the current load. The
// error itself is logged, never shown.
func (v *ContentView) ApplyFailed(msg ContentFailedMsg, logger *slog.Logger) bool {
	if !v.State.IsCurrent(msg.Seq) {
		return false
	}
	logger.Error("failed to load content",
		"view", v.kind.String(),
		"query", v.State.Query,
		"error", msg.Err)
	v.State = v.State.Reject(msg.Seq, v.failureText())
	return true
}

func (v *ContentView) failureText() string {
	if v.kind == ViewSearch {
		return searchFailedText
	}
	return trendingFailedText
}

// Heading returns the title shown above the grid
func (v *ContentView) Heading() string {
	switch v.kind {
	case ViewTrending:
		return "Trending Now"
	case ViewPopular:
		return "Popular TV Shows"
	}
	if v.State.Query == "" {
		return "Search"
	}
	return fmt.Sprintf("Search Results for %q", v.State.Query)
}

// EmptyText returns the message for a successful load with no results
func (v *ContentView) EmptyText() string {
	if v.kind == ViewSearch {
		return fmt.Sprintf("No results found for %q", v.State.Query)
	}
	return emptyListingText
}

// StatusText returns the single message shown instead of the grid, or ""
// when there are cards to draw
func (v *ContentView) StatusText() string {
	switch v.State.Status {
	case view.StatusIdle:
		if v.kind == ViewSearch {
			return searchIdleText
		}
		return listingIdleText
	case view.StatusLoading:
		return loadingText
	case view.StatusFailed:
		return v.State.ErrorMessage
	}
	if len(v.State.Items) == 0 {
		return v.EmptyText()
	}
	return ""
}

// Body renders the grid or the status message in its place
func (v *ContentView) Body(spinnerFrame int) string {
	text := v.StatusText()
	switch {
	case v.State.Status == view.StatusLoading:
		return RenderSpinner(spinnerFrame) + " " + styles.DimStyle.Render(text)
	case v.State.Status == view.StatusFailed:
		return styles.ErrorStyle.Render(text)
	case text != "":
		return styles.DimStyle.Render(text)
	}
	return v.Grid.View(v.State)
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}
