package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/search"
	"github.com/mmcdole/flick/internal/tui/styles"
	"github.com/mmcdole/flick/internal/view"
)

// Layout constants for the card grid
const (
	// Border adds 1 char on each side
	CardBorder = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	CardPadding = 2

	// Lines inside a card: poster, overlay, title, media type
	CardContentLines = 4

	// Full card height including border
	CardHeight = CardContentLines + CardBorder

	// Columns between adjacent cards
	CardGap = 1

	MinCardWidth = 22
	MaxCardWidth = 36

	// Row inside the card (after the top border) holding the overlay
	overlayLine = 1
)

// Overlay labels. Widths are used for hit testing.
const (
	PlayLabel = "[▶ Play]"
	AddLabel  = "[+ Add]"
)

// Action identifies what a pointer press on a card lands on
type Action int

const (
	ActionNone Action = iota
	ActionCard        // Card body, outside the overlay buttons
	ActionPlay
	ActionAdd
)

// Hit is the result of mapping a screen position to a card
type Hit struct {
	ID     int
	Action Action
}

// Grid lays out content cards in responsive columns and maps pointer
// positions back to cards. It does not own the items; views pass their
// state on every call.
type Grid struct {
	// Position of the first card on screen
	originX int
	originY int

	// Dimensions
	width   int
	height  int
	columns int // 0 = fit to width

	// First visible row
	offset int

	showAdd bool
	images  domain.ImageConfig

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
}

// NewGrid creates a grid. showAdd controls whether the hover overlay
// offers add-to-collection next to play.
func NewGrid(images domain.ImageConfig, columns int, showAdd bool) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{
		images:      images,
		columns:     columns,
		showAdd:     showAdd,
		filterInput: ti,
	}
}

// SetSize updates the area available to the grid
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// SetOrigin records where the grid's top-left corner lands on screen
func (g *Grid) SetOrigin(x, y int) {
	g.originX = x
	g.originY = y
}

// ShowsAdd reports whether the overlay includes the add action
func (g Grid) ShowsAdd() bool {
	return g.showAdd
}

// Reset scrolls back to the top and drops any filter
func (g *Grid) Reset() {
	g.offset = 0
	g.clearFilter()
}

// Columns returns how many cards fit on one row
func (g Grid) Columns() int {
	if g.columns > 0 {
		return g.columns
	}
	cols := (g.width + CardGap) / (MinCardWidth + CardGap)
	return max(cols, 1)
}

// CardWidth returns the outer width of a single card
func (g Grid) CardWidth() int {
	cols := g.Columns()
	w := (g.width - CardGap*(cols-1)) / cols
	return min(max(w, MinCardWidth), MaxCardWidth)
}

// visibleRows returns how many card rows fit in the height, leaving room for
// scroll indicators and the filter bar
func (g Grid) visibleRows() int {
	avail := g.height - 1
	if g.filterActive {
		avail--
	}
	return max(avail/CardHeight, 1)
}

// matches returns the items after filtering with their highlight positions
func (g Grid) matches(items []domain.ContentItem) []search.Match {
	return search.NewIndex(items).Filter(g.filterQuery)
}

// Visible returns the items after filtering, in display order
func (g Grid) Visible(items []domain.ContentItem) []domain.ContentItem {
	if g.filterQuery == "" {
		return items
	}
	ms := g.matches(items)
	out := make([]domain.ContentItem, len(ms))
	for i, m := range ms {
		out[i] = m.Item
	}
	return out
}

// indexOf returns the position of id in items, or -1
func indexOf(items []domain.ContentItem, id int) int {
	if id == 0 {
		return -1
	}
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Move returns the id focused after moving from the currently focused card by
// (dRow, dCol). With nothing focused the first card is chosen.
func (g *Grid) Move(items []domain.ContentItem, focused, dRow, dCol int) int {
	visible := g.Visible(items)
	if len(visible) == 0 {
		return 0
	}
	idx := indexOf(visible, focused)
	if idx < 0 {
		g.ensureVisible(0)
		return visible[0].ID
	}
	cols := g.Columns()
	next := idx + dRow*cols + dCol
	next = min(max(next, 0), len(visible)-1)
	g.ensureVisible(next)
	return visible[next].ID
}

// ensureVisible scrolls so the card at idx is on screen
func (g *Grid) ensureVisible(idx int) {
	row := idx / g.Columns()
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
}

// Scroll moves the viewport by delta rows
func (g *Grid) Scroll(items []domain.ContentItem, delta int) {
	total := (len(g.Visible(items)) + g.Columns() - 1) / g.Columns()
	maxOffset := max(total-g.visibleRows(), 0)
	g.offset = min(max(g.offset+delta, 0), maxOffset)
}

// HitTest maps an absolute screen position to the card under it
func (g Grid) HitTest(items []domain.ContentItem, x, y int) (Hit, bool) {
	x -= g.originX
	y -= g.originY
	if x < 0 || y < 0 {
		return Hit{}, false
	}

	cardW := g.CardWidth()
	cellW := cardW + CardGap
	col := x / cellW
	if col >= g.Columns() || x%cellW >= cardW {
		return Hit{}, false
	}
	row := y / CardHeight
	if row >= g.visibleRows() {
		return Hit{}, false
	}

	visible := g.Visible(items)
	idx := (g.offset+row)*g.Columns() + col
	if idx >= len(visible) {
		return Hit{}, false
	}

	hit := Hit{ID: visible[idx].ID, Action: ActionCard}

	// Inside the card: skip border and left padding
	innerY := y%CardHeight - 1
	innerX := x%cellW - 1 - CardPadding/2
	if innerY == overlayLine && innerX >= 0 {
		playW := lipgloss.Width(PlayLabel)
		switch {
		case innerX < playW:
			hit.Action = ActionPlay
		case g.showAdd && innerX > playW && innerX <= playW+lipgloss.Width(AddLabel):
			hit.Action = ActionAdd
		}
	}
	return hit, true
}

// ImageSource returns the poster URL for item, or the placeholder path
func (g Grid) ImageSource(item domain.ContentItem) string {
	return g.images.PosterURL(item)
}

// CardLines returns the text lines of one card, unstyled. Used for rendering
// and by plain output.
func (g Grid) CardLines(item domain.ContentItem, hovered bool, width int) []string {
	overlay := ""
	if hovered {
		overlay = PlayLabel
		if g.showAdd {
			overlay += " " + AddLabel
		}
	}
	return []string{
		styles.Truncate(g.ImageSource(item), width),
		overlay,
		styles.Truncate(item.DisplayTitle(), width),
		styles.Truncate(item.MediaType, width),
	}
}

// highlightMatches renders title with the matched bytes in the accent color
func highlightMatches(title string, matched []int) string {
	if len(matched) == 0 {
		return styles.TitleStyle.Render(title)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(styles.AccentStyle.Bold(true).Render(string(r)))
		} else {
			b.WriteString(styles.TitleStyle.Render(string(r)))
		}
	}
	return b.String()
}

// renderCard renders one card with the hover overlay when focused
func (g Grid) renderCard(item domain.ContentItem, hovered bool, matched []int) string {
	cardW := g.CardWidth()
	inner := cardW - CardBorder - CardPadding
	lines := g.CardLines(item, hovered, inner)

	overlay := ""
	if hovered {
		overlay = styles.ButtonStyle.Render(PlayLabel)
		if g.showAdd {
			overlay += " " + styles.ButtonStyle.Render(AddLabel)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.PosterStyle.Render(lines[0]),
		overlay,
		highlightMatches(lines[2], matched),
		styles.SubtitleStyle.Render(lines[3]),
	)

	style := styles.CardStyle
	if hovered {
		style = styles.CardHoverStyle
	}
	return style.Width(cardW - CardBorder).Height(CardContentLines).Render(content)
}

// View renders the visible cards for state
func (g Grid) View(state view.State) string {
	var visible []domain.ContentItem
	var highlights [][]int
	if g.filterQuery == "" {
		visible = state.Items
		highlights = make([][]int, len(visible))
	} else {
		for _, m := range g.matches(state.Items) {
			visible = append(visible, m.Item)
			highlights = append(highlights, m.MatchedIndexes)
		}
	}
	cols := g.Columns()

	var rows []string
	if len(visible) == 0 {
		rows = append(rows, styles.DimStyle.Render("No matches"))
	}

	start := g.offset * cols
	end := min(start+g.visibleRows()*cols, len(visible))
	for i := start; i < end; i += cols {
		var cells []string
		for j := i; j < min(i+cols, end); j++ {
			if j > i {
				cells = append(cells, strings.Repeat(" ", CardGap))
			}
			cells = append(cells, g.renderCard(visible[j], state.IsHovered(visible[j].ID), highlights[j]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	footer := " "
	if end < len(visible) {
		footer = styles.DimStyle.Render("↓ more")
	} else if g.offset > 0 {
		footer = styles.DimStyle.Render("↑ more")
	}
	rows = append(rows, footer)

	if g.filterActive {
		rows = append(rows, g.renderFilterBar(len(visible), len(state.Items)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
}

// IsFilterTyping returns true if filter is active AND input is focused
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// clearFilter resets filter state
func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filterInput.SetValue("")
	g.filterInput.Blur()
}

// UpdateFilter routes a key to the filter input while typing
func (g Grid) UpdateFilter(msg tea.KeyMsg) (Grid, tea.Cmd) {
	switch msg.String() {
	case "esc":
		g.clearFilter()
		return g, nil
	case "enter":
		// Accept filter, blur input to allow navigation
		g.filterInput.Blur()
		return g, nil
	case "backspace":
		if g.filterInput.Value() == "" {
			g.clearFilter()
			return g, nil
		}
	}

	var cmd tea.Cmd
	g.filterInput, cmd = g.filterInput.Update(msg)
	g.filterQuery = g.filterInput.Value()
	g.offset = 0
	return g, cmd
}

// ClearFilter drops an accepted filter. Returns false if none was active.
func (g *Grid) ClearFilter() bool {
	if !g.filterActive {
		return false
	}
	g.clearFilter()
	return true
}

// renderFilterBar renders the filter input with its match count
func (g Grid) renderFilterBar(count, total int) string {
	bar := g.filterInput.View()
	if g.filterQuery != "" {
		bar += styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", count, total))
	}
	return bar
}
