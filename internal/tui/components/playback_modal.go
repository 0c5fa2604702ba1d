package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flick/internal/tui/styles"
)

// PlaybackModal announces the title chosen for playback. Playback itself
// happens elsewhere.
type PlaybackModal struct {
	visible   bool
	title     string
	mediaType string
}

// Open shows the modal for a title and media type
func (m *PlaybackModal) Open(title, mediaType string) {
	m.visible = true
	m.title = title
	m.mediaType = mediaType
}

// Close dismisses the modal
func (m *PlaybackModal) Close() {
	m.visible = false
	m.title = ""
	m.mediaType = ""
}

// IsOpen returns whether the modal is shown
func (m PlaybackModal) IsOpen() bool {
	return m.visible
}

// Title returns the title being played
func (m PlaybackModal) Title() string {
	return m.title
}

// MediaType returns the media type being played
func (m PlaybackModal) MediaType() string {
	return m.mediaType
}

// HandleKeyMsg returns true when the key closes the modal
func (m PlaybackModal) HandleKeyMsg(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc", "q", "enter", "x":
		return true
	}
	return false
}

// View renders the modal
func (m PlaybackModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 40

	title := m.title
	if title == "" {
		title = "Untitled"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Now Playing"),
		styles.TitleStyle.Render(styles.Truncate(title, modalWidth)),
		styles.SubtitleStyle.Render(m.mediaType),
		"",
		styles.DimStyle.Render("Esc: Close"),
	)

	return styles.ModalStyle.Width(modalWidth).Render(content)
}
