package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// DetailsModal shows the full record for one item. It opens in a loading
// state and is filled in when the lookup returns.
type DetailsModal struct {
	visible bool
	itemID  int
	title   string
	details *domain.Details
	err     string
}

// Open shows the modal for item while its details load
func (m *DetailsModal) Open(item domain.ContentItem) {
	m.visible = true
	m.itemID = item.ID
	m.title = item.DisplayTitle()
	m.details = nil
	m.err = ""
}

// Close dismisses the modal
func (m *DetailsModal) Close() {
	m.visible = false
	m.itemID = 0
}

// IsVisible returns whether the modal is shown
func (m DetailsModal) IsVisible() bool {
	return m.visible
}

// ItemID returns the id the modal is waiting on
func (m DetailsModal) ItemID() int {
	return m.itemID
}

// SetDetails fills the modal if it is still showing itemID
func (m *DetailsModal) SetDetails(itemID int, d *domain.Details) {
	if !m.visible || m.itemID != itemID {
		return
	}
	m.details = d
}

// SetError marks the lookup for itemID as failed
func (m *DetailsModal) SetError(itemID int, message string) {
	if !m.visible || m.itemID != itemID {
		return
	}
	m.err = message
}

// View renders the details modal
func (m DetailsModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 56
	bodyWidth := modalWidth - 4

	lines := []string{styles.ModalTitleStyle.Render(styles.Truncate(m.title, bodyWidth))}

	switch {
	case m.err != "":
		lines = append(lines, styles.ErrorStyle.Render(m.err))
	case m.details == nil:
		lines = append(lines, styles.DimStyle.Render("Loading..."))
	default:
		d := m.details
		var facts []string
		if y := d.Year(); y != "" {
			facts = append(facts, y)
		}
		if rt := d.FormattedRuntime(); rt != "" {
			facts = append(facts, rt)
		}
		if d.NumberOfSeasons > 0 {
			facts = append(facts, fmt.Sprintf("%d seasons", d.NumberOfSeasons))
		}
		if d.VoteAverage > 0 {
			facts = append(facts, fmt.Sprintf("★ %.1f", d.VoteAverage))
		}
		if len(facts) > 0 {
			lines = append(lines, styles.AccentStyle.Render(strings.Join(facts, " · ")))
		}
		if len(d.Genres) > 0 {
			names := make([]string, len(d.Genres))
			for i, g := range d.Genres {
				names[i] = g.Name
			}
			lines = append(lines, styles.SubtitleStyle.Render(strings.Join(names, ", ")))
		}
		if d.Tagline != "" {
			lines = append(lines, "", styles.DimStyle.Render(d.Tagline))
		}
		if d.Overview != "" {
			lines = append(lines, "", lipgloss.NewStyle().Width(bodyWidth).Foreground(styles.LightGray).Render(d.Overview))
		}
	}

	lines = append(lines, "", styles.DimStyle.Render("Esc: Close"))
	return styles.ModalStyle.Width(modalWidth).Render(strings.Join(lines, "\n"))
}
