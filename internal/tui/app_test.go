package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/logging"
	"github.com/mmcdole/flick/internal/view"
)

var batmanResults = []domain.ContentItem{
	{ID: 1, Title: "Batman Begins", MediaType: "movie", PosterPath: "/a.jpg"},
	{ID: 2, Name: "Batman", MediaType: "tv"},
	{ID: 3, Title: "The Batman", MediaType: "movie", PosterPath: "/c.jpg"},
}

// fakeCatalog answers from canned pages keyed by operation
type fakeCatalog struct {
	mu      sync.Mutex
	pages   map[string]*domain.ResultPage
	details *domain.Details
	err     error
	calls   []string
}

func newFakeCatalog() *fakeCatalog {
	page := &domain.ResultPage{Page: 1, TotalPages: 1, TotalResults: 3, Results: batmanResults}
	return &fakeCatalog{pages: map[string]*domain.ResultPage{
		"trending":       page,
		"popular":        {Page: 1, Results: []domain.ContentItem{{ID: 7, Name: "Severance", MediaType: "tv"}}},
		"search:batman":  page,
		"search:bat":     {Page: 1, Results: []domain.ContentItem{{ID: 21, Title: "Bat*21", MediaType: "movie"}}},
		"search:nothing": {Page: 1, Results: []domain.ContentItem{}},
	}}
}

func (f *fakeCatalog) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeCatalog) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCatalog) page(name string) (*domain.ResultPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.pages[name]; ok {
		return p, nil
	}
	return &domain.ResultPage{Results: []domain.ContentItem{}}, nil
}

func (f *fakeCatalog) FetchTrending(ctx context.Context) (*domain.ResultPage, error) {
	return f.page("trending")
}

func (f *fakeCatalog) FetchPopularShows(ctx context.Context) (*domain.ResultPage, error) {
	return f.page("popular")
}

func (f *fakeCatalog) Search(ctx context.Context, query string) (*domain.ResultPage, error) {
	return f.page("search:" + query)
}

func (f *fakeCatalog) FetchDetails(ctx context.Context, id, mediaType string) (*domain.Details, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "details:"+mediaType+"/"+id)
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func newTestModel(catalog domain.Catalog, opts Options) Model {
	opts.Images = domain.DefaultImageConfig()
	m := NewModel(catalog, logging.NullLogger(), opts)
	// 47 columns fit two 23-wide cards; the grid starts on row 2
	next, _ := m.Update(tea.WindowSizeMsg{Width: 47, Height: 23})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// run executes a load command and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// readyTrending returns a model with trending loaded
func readyTrending(t *testing.T, catalog *fakeCatalog) Model {
	t.Helper()
	m := newTestModel(catalog, Options{})
	m = run(t, m, m.activeView().Mount(catalog))
	require.Equal(t, view.StatusReady, m.activeView().State.Status)
	return m
}

func TestTrendingLoads(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(catalog, Options{})
	v := m.activeView()

	cmd := v.Mount(catalog)
	assert.Equal(t, view.StatusLoading, v.State.Status)
	assert.Contains(t, v.Body(0), "Loading...")

	m = run(t, m, cmd)
	v = m.activeView()
	assert.Equal(t, view.StatusReady, v.State.Status)
	assert.Equal(t, batmanResults, v.State.Items)
	assert.Equal(t, "Trending Now", v.Heading())
	assert.Contains(t, m.View(), "Batman Begins")
}

func TestTrendingEmpty(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.pages["trending"] = &domain.ResultPage{Results: []domain.ContentItem{}}
	m := readyTrending(t, catalog)
	assert.Equal(t, "No content available. Please try again later.", m.activeView().StatusText())
}

func TestFailureIsLoggedNotShownAndReloadRecovers(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.setErr(errors.New("dial tcp: connection refused"))

	m := newTestModel(catalog, Options{})
	m = run(t, m, m.activeView().Mount(catalog))

	v := m.activeView()
	assert.Equal(t, view.StatusFailed, v.State.Status)
	assert.Equal(t, "Failed to fetch trending content. Please try again later.", v.StatusText())
	assert.NotContains(t, m.View(), "connection refused")

	catalog.setErr(nil)
	m, cmd := update(t, m, keyMsg("r"))
	assert.Equal(t, view.StatusLoading, m.activeView().State.Status)
	assert.Empty(t, m.activeView().State.ErrorMessage, "reload clears the previous failure")

	m = run(t, m, cmd)
	assert.Equal(t, view.StatusReady, m.activeView().State.Status)
	assert.Len(t, m.activeView().State.Items, 3)
}

func TestReloadDiscardsInFlightResponse(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(catalog, Options{})

	first := m.activeView().Mount(catalog)
	m, second := update(t, m, keyMsg("r"))

	m = run(t, m, first)
	assert.Equal(t, view.StatusLoading, m.activeView().State.Status, "superseded load is ignored")

	m = run(t, m, second)
	assert.Equal(t, view.StatusReady, m.activeView().State.Status)
}

func TestSearchWithoutQueryStaysIdle(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(catalog, Options{DefaultView: ViewSearch})
	v := m.activeView()
	require.Equal(t, ViewSearch, v.Kind())

	assert.Nil(t, v.SetQuery(catalog, "   "))
	assert.Equal(t, view.StatusIdle, v.State.Status)
	assert.Empty(t, v.State.Items)
	assert.Equal(t, "Type s to search the catalog", v.StatusText())
	assert.Empty(t, catalog.callLog())
}

func TestClearingQueryDropsResults(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(catalog, Options{Query: "batman"})
	v := m.activeView()
	m = run(t, m, v.SetQuery(catalog, "batman"))
	require.Len(t, v.State.Items, 3)

	inflight := v.SetQuery(catalog, "bat")
	assert.Nil(t, v.SetQuery(catalog, ""))
	assert.Equal(t, view.StatusIdle, v.State.Status)
	assert.Empty(t, v.State.Items)

	run(t, m, inflight)
	assert.Equal(t, view.StatusIdle, v.State.Status, "response for the cleared query is dropped")
}

func TestSearchDiscardsStaleResponse(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(catalog, Options{Query: "bat"})
	v := m.activeView()

	older := v.SetQuery(catalog, "bat")
	newer := v.SetQuery(catalog, "batman")

	m = run(t, m, newer)
	m = run(t, m, older)

	assert.Equal(t, "batman", v.State.Query)
	assert.Equal(t, batmanResults, v.State.Items)
	assert.Equal(t, `Search Results for "batman"`, v.Heading())

	assert.Nil(t, v.SetQuery(catalog, "batman"), "resubmitting the same query does nothing")
}

func TestSearchNoResults(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(catalog, Options{Query: "nothing"})
	v := m.activeView()
	run(t, m, v.SetQuery(catalog, "nothing"))
	assert.Equal(t, `No results found for "nothing"`, v.StatusText())
}

func TestSearchFailure(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.setErr(&domain.RequestError{StatusCode: 401, Status: "401 Unauthorized"})
	m := newTestModel(catalog, Options{Query: "batman"})
	v := m.activeView()
	run(t, m, v.SetQuery(catalog, "batman"))
	assert.Equal(t, view.StatusFailed, v.State.Status)
	assert.Equal(t, "Failed to fetch search results. Please try again.", v.StatusText())
}

func TestSearchPromptSubmits(t *testing.T) {
	catalog := newFakeCatalog()
	m := readyTrending(t, catalog)

	m, _ = update(t, m, keyMsg("s"))
	require.True(t, m.SearchPrompt.IsVisible())
	m, _ = update(t, m, keyMsg("batman"))
	m, cmd := update(t, m, keyMsg("enter"))

	assert.Equal(t, ViewSearch, m.activeView().Kind())
	assert.Equal(t, view.StatusLoading, m.activeView().State.Status)
	m = run(t, m, cmd)
	assert.Equal(t, batmanResults, m.activeView().State.Items)
	assert.Contains(t, catalog.callLog(), "search:batman")
}

func TestMouseMotionHover(t *testing.T) {
	m := readyTrending(t, newFakeCatalog())

	m, _ = update(t, m, motion(2, 3))
	assert.Equal(t, 1, m.activeView().State.HoveredID)

	m, _ = update(t, m, motion(24, 3))
	assert.Equal(t, 2, m.activeView().State.HoveredID, "entering a neighbour replaces focus")

	m, _ = update(t, m, motion(23, 3))
	assert.Zero(t, m.activeView().State.HoveredID, "gap between cards clears focus")
}

func TestClickPlayOpensAndClosesModal(t *testing.T) {
	m := readyTrending(t, newFakeCatalog())

	m, _ = update(t, m, click(2, 4))
	require.True(t, m.PlaybackModal.IsOpen())
	assert.Equal(t, "Batman Begins", m.PlaybackModal.Title())
	assert.Equal(t, "movie", m.PlaybackModal.MediaType())
	require.NotNil(t, m.activeView().State.Selected)
	assert.Equal(t, 1, m.activeView().State.Selected.ID)

	m, _ = update(t, m, motion(24, 3))
	assert.Equal(t, 1, m.activeView().State.HoveredID, "pointer is ignored under a modal")

	m, _ = update(t, m, keyMsg("esc"))
	assert.False(t, m.PlaybackModal.IsOpen())
	assert.Nil(t, m.activeView().State.Selected)
}

func TestKeyboardAddToCollection(t *testing.T) {
	m := readyTrending(t, newFakeCatalog())

	m, _ = update(t, m, keyMsg("l"))
	assert.Equal(t, 1, m.activeView().State.HoveredID)
	m, _ = update(t, m, keyMsg("l"))
	assert.Equal(t, 2, m.activeView().State.HoveredID)

	m, _ = update(t, m, keyMsg("a"))
	require.True(t, m.CollectionModal.IsVisible())
	m, cmd := update(t, m, keyMsg("enter"))
	assert.NotNil(t, cmd)
	assert.False(t, m.CollectionModal.IsVisible())
	assert.Equal(t, "Added Batman to My Stuff", m.StatusMsg)
	assert.True(t, m.CollectionModal.Collections()[0].Contains(2))
}

func TestSearchViewOffersPlayOnly(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(catalog, Options{Query: "batman"})
	m = run(t, m, m.activeView().SetQuery(catalog, "batman"))

	m, _ = update(t, m, keyMsg("l"))
	m, _ = update(t, m, keyMsg("a"))
	assert.False(t, m.CollectionModal.IsVisible())

	m, _ = update(t, m, click(11, 4))
	assert.False(t, m.CollectionModal.IsVisible())
	assert.False(t, m.PlaybackModal.IsOpen())

	m, _ = update(t, m, click(2, 4))
	assert.True(t, m.PlaybackModal.IsOpen())
	assert.Equal(t, "Batman Begins", m.PlaybackModal.Title())
}

func TestDetailsModal(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.details = &domain.Details{ID: 1, Title: "Batman Begins", ReleaseDate: "2005-06-10", Overview: "Driven by tragedy"}
	m := readyTrending(t, catalog)

	m, _ = update(t, m, keyMsg("l"))
	m, cmd := update(t, m, keyMsg("i"))
	require.True(t, m.DetailsModal.IsVisible())

	m = run(t, m, cmd)
	assert.Contains(t, catalog.callLog(), "details:movie/1")
	assert.Contains(t, m.View(), "Driven by tragedy")

	m, _ = update(t, m, keyMsg("esc"))
	assert.False(t, m.DetailsModal.IsVisible())
}

func TestTabSwitchLoadsPopularOnce(t *testing.T) {
	catalog := newFakeCatalog()
	m := readyTrending(t, catalog)

	m, cmd := update(t, m, keyMsg("2"))
	assert.Equal(t, ViewPopular, m.activeView().Kind())
	m = run(t, m, cmd)
	assert.Equal(t, "Popular TV Shows", m.activeView().Heading())
	assert.Equal(t, "Severance", m.activeView().State.Items[0].DisplayTitle())

	m, _ = update(t, m, keyMsg("1"))
	m, cmd = update(t, m, keyMsg("tab"))
	assert.Nil(t, cmd, "loaded tabs are not refetched")
	assert.Equal(t, ViewPopular, m.activeView().Kind())
}

func TestFilterNarrowsGrid(t *testing.T) {
	m := readyTrending(t, newFakeCatalog())

	m, _ = update(t, m, keyMsg("/"))
	m, _ = update(t, m, keyMsg("beg"))
	visible := m.activeView().Grid.Visible(m.activeView().State.Items)
	require.Len(t, visible, 1)
	assert.Equal(t, "Batman Begins", visible[0].DisplayTitle())

	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("esc"))
	assert.Len(t, m.activeView().Grid.Visible(m.activeView().State.Items), 3)
}

func TestParseViewKind(t *testing.T) {
	assert.Equal(t, ViewTrending, ParseViewKind("trending"))
	assert.Equal(t, ViewPopular, ParseViewKind(" Popular "))
	assert.Equal(t, ViewSearch, ParseViewKind("search"))
	assert.Equal(t, ViewTrending, ParseViewKind("bogus"))
}

func TestRunPlainSearch(t *testing.T) {
	var out bytes.Buffer
	err := RunPlain(context.Background(), &out, newFakeCatalog(), logging.NullLogger(), PlainOptions{
		Kind:   ViewSearch,
		Query:  "batman",
		Images: domain.DefaultImageConfig(),
		Width:  100,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `Search Results for "batman"`, lines[0])
	assert.Contains(t, lines[1], "Batman Begins")
	assert.Contains(t, lines[1], "https://image.tmdb.org/t/p/w500/a.jpg")
	assert.Contains(t, lines[2], "tv")
	assert.Contains(t, lines[2], domain.PlaceholderPoster)
}

func TestRunPlainFailure(t *testing.T) {
	catalog := newFakeCatalog()
	boom := errors.New("connection reset by peer")
	catalog.setErr(boom)

	var out bytes.Buffer
	err := RunPlain(context.Background(), &out, catalog, logging.NullLogger(), PlainOptions{Kind: ViewTrending})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, out.String(), "Failed to fetch trending content. Please try again later.")
	assert.NotContains(t, out.String(), "connection reset")
}

func TestRunPlainBlankSearch(t *testing.T) {
	catalog := newFakeCatalog()
	var out bytes.Buffer
	err := RunPlain(context.Background(), &out, catalog, logging.NullLogger(), PlainOptions{Kind: ViewSearch})
	require.NoError(t, err)
	assert.Equal(t, "Search\nType s to search the catalog\n", out.String())
	assert.Empty(t, catalog.callLog())
}
