package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/components"
	"github.com/mmcdole/flick/internal/tui/styles"
	"github.com/mmcdole/flick/internal/view"
)

const (
	spinnerInterval = 100 * time.Millisecond
	statusDuration  = 3 * time.Second
)

// Options configures a new Model
type Options struct {
	Images      domain.ImageConfig
	Columns     int           // 0 = fit to width
	DefaultView ViewKind      // Tab shown at startup
	Query       string        // Initial search; selects the search tab when set
	Timeout     time.Duration // Per-request deadline; 0 defers to the catalog client
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	Catalog      domain.Catalog
	Logger       *slog.Logger
	FetchTimeout time.Duration

	// Tabs, in display order
	Views  []*ContentView
	Active int

	// Modals
	PlaybackModal   components.PlaybackModal
	CollectionModal components.CollectionModal
	DetailsModal    components.DetailsModal
	SearchPrompt    components.SearchPrompt

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int

	initialQuery string
}

// NewModel creates a new application model
func NewModel(catalog domain.Catalog, logger *slog.Logger, opts Options) Model {
	if logger == nil {
		logger = slog.Default()
	}

	views := []*ContentView{
		NewContentView(ViewTrending, opts.Images, opts.Columns),
		NewContentView(ViewPopular, opts.Images, opts.Columns),
		NewContentView(ViewSearch, opts.Images, opts.Columns),
	}
	for _, v := range views {
		v.Timeout = opts.Timeout
	}

	active := int(opts.DefaultView)
	query := strings.TrimSpace(opts.Query)
	if query != "" {
		active = int(ViewSearch)
	}

	return Model{
		Catalog:         catalog,
		Logger:          logger,
		FetchTimeout:    opts.Timeout,
		Views:           views,
		Active:          active,
		CollectionModal: components.NewCollectionModal(),
		SearchPrompt:    components.NewSearchPrompt(),
		initialQuery:    query,
	}
}

// Init loads the startup tab
func (m Model) Init() tea.Cmd {
	var load tea.Cmd
	if v := m.activeView(); v.Kind() == ViewSearch {
		load = v.SetQuery(m.Catalog, m.initialQuery)
	} else {
		load = v.Mount(m.Catalog)
	}
	return tea.Batch(load, TickCmd(spinnerInterval))
}

// activeView returns the view on the current tab
func (m Model) activeView() *ContentView {
	return m.Views[m.Active]
}

// viewFor returns the view of the given kind
func (m Model) viewFor(kind ViewKind) *ContentView {
	for _, v := range m.Views {
		if v.Kind() == kind {
			return v
		}
	}
	return nil
}

// modalOpen reports whether any modal is capturing input
func (m Model) modalOpen() bool {
	return m.PlaybackModal.IsOpen() ||
		m.CollectionModal.IsVisible() ||
		m.DetailsModal.IsVisible() ||
		m.SearchPrompt.IsVisible()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(spinnerInterval)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ContentLoadedMsg:
		if v := m.viewFor(msg.View); v != nil && !v.ApplyLoaded(msg) {
			m.Logger.Debug("discarded stale response", "view", msg.View.String(), "seq", msg.Seq)
		}
		return m, nil

	case ContentFailedMsg:
		if v := m.viewFor(msg.View); v != nil && !v.ApplyFailed(msg, m.Logger) {
			m.Logger.Debug("discarded stale failure", "view", msg.View.String(), "seq", msg.Seq)
		}
		return m, nil

	case DetailsLoadedMsg:
		m.DetailsModal.SetDetails(msg.ItemID, msg.Details)
		return m, nil

	case DetailsFailedMsg:
		m.Logger.Error("failed to load details", "id", msg.ItemID, "error", msg.Err)
		m.DetailsModal.SetError(msg.ItemID, "Details are unavailable right now.")
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	v := m.activeView()

	// Filter input captures everything while typing
	if v.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		v.Grid, cmd = v.Grid.UpdateFilter(msg)
		v.State = v.State.HoverLeave(v.State.HoveredID)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Escape):
		if v.Grid.ClearFilter() {
			return m, nil
		}
		v.State = v.State.HoverLeave(v.State.HoveredID)
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		return m.switchTab((m.Active + 1) % len(m.Views))
	case key.Matches(msg, Keys.PrevTab):
		return m.switchTab((m.Active + len(m.Views) - 1) % len(m.Views))
	case key.Matches(msg, Keys.Trending):
		return m.switchTab(int(ViewTrending))
	case key.Matches(msg, Keys.Popular):
		return m.switchTab(int(ViewPopular))
	case key.Matches(msg, Keys.Results):
		return m.switchTab(int(ViewSearch))

	case key.Matches(msg, Keys.Search):
		query := m.viewFor(ViewSearch).State.Query
		return m, m.SearchPrompt.Open(query)

	case key.Matches(msg, Keys.Refresh):
		return m, v.Mount(m.Catalog)

	case key.Matches(msg, Keys.Filter):
		if v.State.Status == view.StatusReady && len(v.State.Items) > 0 {
			v.Grid.ToggleFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.moveFocus(-1, 0)
	case key.Matches(msg, Keys.Down):
		m.moveFocus(1, 0)
	case key.Matches(msg, Keys.Left):
		m.moveFocus(0, -1)
	case key.Matches(msg, Keys.Right):
		m.moveFocus(0, 1)
	case key.Matches(msg, Keys.PageUp):
		v.Grid.Scroll(v.State.Items, -1)
	case key.Matches(msg, Keys.PageDown):
		v.Grid.Scroll(v.State.Items, 1)

	case key.Matches(msg, Keys.Play):
		if item, ok := v.State.HoveredItem(); ok {
			m.play(item)
		}
	case key.Matches(msg, Keys.Add):
		if item, ok := v.State.HoveredItem(); ok && v.Grid.ShowsAdd() {
			m.CollectionModal.Show(item)
		}
	case key.Matches(msg, Keys.Details):
		if item, ok := v.State.HoveredItem(); ok {
			m.DetailsModal.Open(item)
			return m, LoadDetailsCmd(m.Catalog, m.detailsTarget(item), m.FetchTimeout)
		}
	}

	return m, nil
}

// routeToModal routes key input to active modals
// Returns (handled, model, cmd) where handled is true if a modal consumed the input
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.SearchPrompt.IsVisible() {
		var cmd tea.Cmd
		var query string
		var submitted bool
		m.SearchPrompt, cmd, query, submitted = m.SearchPrompt.Update(msg)
		if submitted {
			m.Active = int(ViewSearch)
			return true, m, m.activeView().SetQuery(m.Catalog, query)
		}
		return true, m, cmd
	}

	if m.CollectionModal.IsVisible() {
		closed, summary := m.CollectionModal.HandleKeyMsg(msg)
		if closed && summary != "" {
			m.StatusMsg = summary
			m.StatusIsErr = false
			return true, m, ClearStatusCmd(statusDuration)
		}
		return true, m, nil
	}

	if m.DetailsModal.IsVisible() {
		if key.Matches(msg, Keys.Escape, Keys.Quit, Keys.Details) {
			m.DetailsModal.Close()
		}
		return true, m, nil
	}

	if m.PlaybackModal.IsOpen() {
		if m.PlaybackModal.HandleKeyMsg(msg) {
			m.closePlayback()
		}
		return true, m, nil
	}

	return false, m, nil
}

// handleMouseMsg maps pointer motion to hover and presses to actions
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modalOpen() {
		return m, nil
	}
	v := m.activeView()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		v.Grid.Scroll(v.State.Items, -1)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		v.Grid.Scroll(v.State.Items, 1)
		return m, nil
	}

	if msg.Y < TabBarHeight {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if idx, ok := m.tabAt(msg.X); ok {
				return m.switchTab(idx)
			}
		}
		return m, nil
	}

	if v.State.Status != view.StatusReady {
		return m, nil
	}

	hit, ok := v.Grid.HitTest(v.State.Items, msg.X, msg.Y)
	if !ok {
		// Pointer left whatever card it was on
		v.State = v.State.HoverLeave(v.State.HoveredID)
		return m, nil
	}
	if hit.ID != v.State.HoveredID {
		v.State = v.State.HoverLeave(v.State.HoveredID).HoverEnter(hit.ID)
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	item, found := v.State.Item(hit.ID)
	if !found {
		return m, nil
	}
	switch hit.Action {
	case components.ActionPlay:
		m.play(item)
	case components.ActionAdd:
		m.CollectionModal.Show(item)
	}
	return m, nil
}

// switchTab activates a tab, loading listings the first time they are shown
func (m Model) switchTab(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.Views) || idx == m.Active {
		return m, nil
	}
	m.Active = idx
	v := m.activeView()
	if v.Kind() != ViewSearch && v.State.Status == view.StatusIdle {
		return m, v.Mount(m.Catalog)
	}
	return m, nil
}

// moveFocus moves keyboard focus across the grid
func (m *Model) moveFocus(dRow, dCol int) {
	v := m.activeView()
	if v.State.Status != view.StatusReady {
		return
	}
	id := v.Grid.Move(v.State.Items, v.State.HoveredID, dRow, dCol)
	if id != 0 {
		v.State = v.State.HoverEnter(id)
	}
}

// play selects item on the active view and opens the playback modal
func (m *Model) play(item domain.ContentItem) {
	v := m.activeView()
	v.State = v.State.Select(item)
	m.PlaybackModal.Open(item.DisplayTitle(), item.MediaType)
	m.Logger.Info("playback requested", "id", item.ID, "title", item.DisplayTitle(), "media_type", item.MediaType)
}

// closePlayback dismisses the playback modal and clears the selection
func (m *Model) closePlayback() {
	m.PlaybackModal.Close()
	v := m.activeView()
	v.State = v.State.CloseSelection()
}

// detailsTarget fills in the media type for listings that omit it
func (m Model) detailsTarget(item domain.ContentItem) domain.ContentItem {
	if item.MediaType == "" && m.activeView().Kind() == ViewPopular {
		item.MediaType = string(domain.MediaTypeTV)
	}
	return item
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	v := m.activeView()

	var tabs []string
	for i, tv := range m.Views {
		tabs = append(tabs, renderTab(tv.Kind(), i == m.Active))
	}
	tabBar := strings.Join(tabs, strings.Repeat(" ", tabGap))

	heading := styles.HeadingStyle.Render(styles.Truncate(v.Heading(), m.Width))

	body := lipgloss.NewStyle().
		Width(m.Width).
		Height(max(m.Height-ChromeHeight, 1)).
		MaxHeight(max(m.Height-ChromeHeight, 1)).
		Render(v.Body(m.SpinnerFrame))

	screen := lipgloss.JoinVertical(lipgloss.Left,
		tabBar,
		heading,
		body,
		m.renderFooter(),
	)

	// Overlay modals
	var modal string
	switch {
	case m.SearchPrompt.IsVisible():
		modal = m.SearchPrompt.View()
	case m.CollectionModal.IsVisible():
		modal = m.CollectionModal.View()
	case m.DetailsModal.IsVisible():
		modal = m.DetailsModal.View()
	case m.PlaybackModal.IsOpen():
		modal = m.PlaybackModal.View()
	}
	if modal != "" {
		screen = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			modal)
	}

	return screen
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	hints := []key.Binding{Keys.Search, Keys.Play}
	if m.activeView().Grid.ShowsAdd() {
		hints = append(hints, Keys.Add)
	}
	hints = append(hints, Keys.Details, Keys.Filter, Keys.Refresh, Keys.NextTab, Keys.Quit)

	var parts []string
	for _, b := range hints {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	right := strings.Join(parts, "  ")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
