package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flick/internal/tui/styles"
)

// Vertical layout: tab bar, heading, grid, footer
const (
	TabBarHeight  = 1
	HeadingHeight = 1
	FooterHeight  = 1

	// First screen row of the grid
	GridTop = TabBarHeight + HeadingHeight

	ChromeHeight = GridTop + FooterHeight

	// Columns between tabs
	tabGap = 1
)

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	gridHeight := max(m.Height-ChromeHeight, 1)
	for _, v := range m.Views {
		v.Grid.SetSize(m.Width, gridHeight)
		v.Grid.SetOrigin(0, GridTop)
	}
}

// renderTab renders one tab label
func renderTab(kind ViewKind, active bool) string {
	if active {
		return styles.ActiveTabStyle.Render(kind.String())
	}
	return styles.InactiveTabStyle.Render(kind.String())
}

// tabAt returns the tab under column x on the tab bar
func (m Model) tabAt(x int) (int, bool) {
	left := 0
	for i, v := range m.Views {
		w := lipgloss.Width(renderTab(v.Kind(), i == m.Active))
		if x >= left && x < left+w {
			return i, true
		}
		left += w + tabGap
	}
	return 0, false
}
