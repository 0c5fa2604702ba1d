package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// DefaultCollection is created on first use
const DefaultCollection = "My Stuff"

// Collection is a named set of content items. Collections live only as long
// as the program.
type Collection struct {
	Name  string
	items map[int]domain.ContentItem
	order []int
}

func newCollection(name string) *Collection {
	return &Collection{Name: name, items: make(map[int]domain.ContentItem)}
}

// Contains reports whether the item id is in the collection
func (c *Collection) Contains(id int) bool {
	_, ok := c.items[id]
	return ok
}

// Items returns the members in insertion order
func (c *Collection) Items() []domain.ContentItem {
	out := make([]domain.ContentItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Collection) add(item domain.ContentItem) {
	if c.Contains(item.ID) {
		return
	}
	c.items[item.ID] = item
	c.order = append(c.order, item.ID)
}

func (c *Collection) remove(id int) {
	if !c.Contains(id) {
		return
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// CollectionModal adds or removes one item across collections. The caller
// hands it an item and learns nothing about the outcome beyond the summary.
type CollectionModal struct {
	visible     bool
	item        domain.ContentItem
	collections []*Collection
	pending     []bool // index-aligned with collections

	cursor     int
	createMode bool
	newName    textinput.Model
}

// NewCollectionModal creates the modal with the default collection
func NewCollectionModal() CollectionModal {
	ti := textinput.New()
	ti.Placeholder = "Collection name..."
	ti.Prompt = "> "
	ti.CharLimit = 40

	return CollectionModal{
		collections: []*Collection{newCollection(DefaultCollection)},
		newName:     ti,
	}
}

// Show displays the modal for item
func (m *CollectionModal) Show(item domain.ContentItem) {
	m.visible = true
	m.item = item
	m.cursor = 0
	m.createMode = false
	m.newName.SetValue("")
	m.newName.Blur()

	m.pending = make([]bool, len(m.collections))
	for i, c := range m.collections {
		m.pending[i] = c.Contains(item.ID)
	}
	// New items default into the first collection so one Enter adds them
	if !anyTrue(m.pending) && len(m.pending) > 0 {
		m.pending[0] = true
	}
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}

// Hide dismisses the modal without applying changes
func (m *CollectionModal) Hide() {
	m.visible = false
	m.createMode = false
	m.newName.Blur()
}

// IsVisible returns whether the modal is shown
func (m *CollectionModal) IsVisible() bool {
	return m.visible
}

// Item returns the item being managed
func (m *CollectionModal) Item() domain.ContentItem {
	return m.item
}

// Collections returns all collections
func (m *CollectionModal) Collections() []*Collection {
	return m.collections
}

// HandleKeyMsg processes a key. When the modal closes after confirming,
// summary describes what changed ("" if nothing).
func (m *CollectionModal) HandleKeyMsg(msg tea.KeyMsg) (closed bool, summary string) {
	if !m.visible {
		return false, ""
	}

	key := msg.String()

	// Handle create mode (text input active)
	if m.createMode {
		switch key {
		case "esc":
			m.createMode = false
			m.newName.Blur()
			m.newName.SetValue("")
		case "enter":
			name := strings.TrimSpace(m.newName.Value())
			if name != "" {
				m.collections = append(m.collections, newCollection(name))
				m.pending = append(m.pending, true)
				m.cursor = len(m.collections) - 1
				m.createMode = false
				m.newName.Blur()
				m.newName.SetValue("")
			}
		default:
			m.newName, _ = m.newName.Update(msg)
		}
		return false, ""
	}

	switch key {
	case "j", "down":
		// +1 for the "Create new" option at the end
		if m.cursor < len(m.collections) {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ":
		if m.cursor < len(m.collections) {
			m.pending[m.cursor] = !m.pending[m.cursor]
		} else {
			m.createMode = true
			m.newName.Focus()
		}
	case "n":
		m.createMode = true
		m.newName.Focus()
	case "enter":
		if m.cursor == len(m.collections) {
			m.createMode = true
			m.newName.Focus()
			return false, ""
		}
		summary := m.apply()
		m.Hide()
		return true, summary
	case "esc", "q":
		m.Hide()
		return true, ""
	}
	return false, ""
}

// apply commits pending membership and describes the change
func (m *CollectionModal) apply() string {
	var added, removed []string
	for i, c := range m.collections {
		want := m.pending[i]
		switch {
		case want && !c.Contains(m.item.ID):
			c.add(m.item)
			added = append(added, c.Name)
		case !want && c.Contains(m.item.ID):
			c.remove(m.item.ID)
			removed = append(removed, c.Name)
		}
	}

	title := m.item.DisplayTitle()
	switch {
	case len(added) > 0 && len(removed) > 0:
		return fmt.Sprintf("Moved %s to %s", title, strings.Join(added, ", "))
	case len(added) > 0:
		return fmt.Sprintf("Added %s to %s", title, strings.Join(added, ", "))
	case len(removed) > 0:
		return fmt.Sprintf("Removed %s from %s", title, strings.Join(removed, ", "))
	}
	return ""
}

// View renders the collection modal
func (m *CollectionModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 40
	rowWidth := modalWidth - 4

	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render("Add to Collection"))
	lines = append(lines, styles.SubtitleStyle.Render(styles.Truncate(m.item.DisplayTitle(), rowWidth)))
	lines = append(lines, "")

	for i, c := range m.collections {
		checkbox := "[ ]"
		if m.pending[i] {
			checkbox = "[x]"
		}
		line := styles.Pad(fmt.Sprintf("%s %s (%d)", checkbox, c.Name, len(c.order)), rowWidth)

		switch {
		case i == m.cursor:
			line = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight).Render(line)
		case m.pending[i]:
			line = lipgloss.NewStyle().Foreground(styles.Accent).Render(line)
		default:
			line = lipgloss.NewStyle().Foreground(styles.LightGray).Render(line)
		}
		lines = append(lines, line)
	}

	createLine := "[+] New collection..."
	if m.createMode {
		createLine = m.newName.View()
	} else if m.cursor == len(m.collections) {
		createLine = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight).Render(styles.Pad(createLine, rowWidth))
	} else {
		createLine = styles.DimStyle.Render(createLine)
	}
	lines = append(lines, "", createLine, "")
	lines = append(lines, styles.DimStyle.Render("Space: Toggle  n: New  Enter: Save  Esc: Cancel"))

	return styles.ModalStyle.Width(modalWidth).Render(strings.Join(lines, "\n"))
}
