package components

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flick/internal/tui/styles"
)

const maxRecentQueries = 10

// SearchPrompt collects a catalog query. Up and down recall earlier
// queries from this session. Submitting an empty prompt clears the search.
type SearchPrompt struct {
	visible bool
	input   textinput.Model

	recent []string // Newest first
	recall int      // Position in recent, -1 while editing fresh input
	draft  string   // Fresh input saved while recalling
}

// NewSearchPrompt creates a hidden prompt
func NewSearchPrompt() SearchPrompt {
	ti := textinput.New()
	ti.Placeholder = "Search movies and shows..."
	ti.CharLimit = 100
	ti.Width = 34
	ti.Prompt = "> "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchPrompt{input: ti, recall: -1}
}

// Open shows the prompt prefilled with the current query
func (p *SearchPrompt) Open(current string) tea.Cmd {
	p.visible = true
	p.recall = -1
	p.draft = ""
	p.input.SetValue(current)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Close hides the prompt without submitting
func (p *SearchPrompt) Close() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the prompt is shown
func (p SearchPrompt) IsVisible() bool {
	return p.visible
}

// Recent returns submitted queries, newest first
func (p SearchPrompt) Recent() []string {
	return p.recent
}

// Update handles input. On submit it returns the trimmed query and true.
func (p SearchPrompt) Update(msg tea.Msg) (SearchPrompt, tea.Cmd, string, bool) {
	if !p.visible {
		return p, nil, "", false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			query := strings.TrimSpace(p.input.Value())
			p.remember(query)
			p.Close()
			return p, nil, query, true
		case "esc":
			p.Close()
			return p, nil, "", false
		case "up":
			p.recallOlder()
			return p, nil, "", false
		case "down":
			p.recallNewer()
			return p, nil, "", false
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, "", false
}

// remember moves query to the front of the recent list
func (p *SearchPrompt) remember(query string) {
	if query == "" {
		return
	}
	p.recent = slices.DeleteFunc(p.recent, func(q string) bool { return q == query })
	p.recent = append([]string{query}, p.recent...)
	if len(p.recent) > maxRecentQueries {
		p.recent = p.recent[:maxRecentQueries]
	}
}

func (p *SearchPrompt) recallOlder() {
	if p.recall+1 >= len(p.recent) {
		return
	}
	if p.recall == -1 {
		p.draft = p.input.Value()
	}
	p.recall++
	p.input.SetValue(p.recent[p.recall])
	p.input.CursorEnd()
}

func (p *SearchPrompt) recallNewer() {
	if p.recall < 0 {
		return
	}
	p.recall--
	if p.recall == -1 {
		p.input.SetValue(p.draft)
	} else {
		p.input.SetValue(p.recent[p.recall])
	}
	p.input.CursorEnd()
}

// View renders the prompt
func (p SearchPrompt) View() string {
	if !p.visible {
		return ""
	}

	const modalWidth = 40

	lines := []string{
		styles.ModalTitleStyle.Render("Search"),
		p.input.View(),
		"",
	}
	if len(p.recent) > 0 {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate("↑ "+p.recent[0], modalWidth-4)))
	}
	lines = append(lines, styles.DimStyle.Render("Enter: Search  Esc: Cancel"))

	return styles.ModalStyle.Width(modalWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
