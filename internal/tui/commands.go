package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flick/internal/domain"
)

// fetchContext bounds a single catalog call made from the UI. A zero timeout
// leaves the deadline to the catalog's own HTTP client.
func fetchContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// fetchContent runs the catalog call behind a view
func fetchContent(ctx context.Context, catalog domain.Catalog, kind ViewKind, query string) (*domain.ResultPage, error) {
	switch kind {
	case ViewTrending:
		return catalog.FetchTrending(ctx)
	case ViewPopular:
		return catalog.FetchPopularShows(ctx)
	case ViewSearch:
		return catalog.Search(ctx, query)
	}
	return nil, fmt.Errorf("unknown view %d", kind)
}

// LoadContentCmd loads the page for a view, tagged with the load's sequence
func LoadContentCmd(catalog domain.Catalog, kind ViewKind, seq uint64, query string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := fetchContext(timeout)
		defer cancel()

		page, err := fetchContent(ctx, catalog, kind, query)
		if err != nil {
			return ContentFailedMsg{View: kind, Seq: seq, Err: err}
		}
		return ContentLoadedMsg{View: kind, Seq: seq, Page: page}
	}
}

// LoadDetailsCmd looks up the full record for an item
func LoadDetailsCmd(catalog domain.Catalog, item domain.ContentItem, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := fetchContext(timeout)
		defer cancel()

		details, err := catalog.FetchDetails(ctx, strconv.Itoa(item.ID), item.MediaType)
		if err != nil {
			return DetailsFailedMsg{ItemID: item.ID, Err: err}
		}
		return DetailsLoadedMsg{ItemID: item.ID, Details: details}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
