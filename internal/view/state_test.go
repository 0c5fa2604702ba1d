package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flick/internal/domain"
)

var (
	begins = domain.ContentItem{ID: 1, Title: "Batman Begins", MediaType: "movie", PosterPath: "/a.jpg"}
	series = domain.ContentItem{ID: 2, Name: "Batman", MediaType: "tv"}
)

func TestBeginResolve(t *testing.T) {
	var s State
	assert.Equal(t, StatusIdle, s.Status)

	s, seq := s.Begin("batman")
	assert.Equal(t, StatusLoading, s.Status)
	assert.Equal(t, "batman", s.Query)

	s = s.Resolve(seq, []domain.ContentItem{begins, series})
	want := State{
		Status: StatusReady,
		Items:  []domain.ContentItem{begins, series},
		Query:  "batman",
		Seq:    seq,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveNilItemsIsReadyEmpty(t *testing.T) {
	s, seq := State{}.Begin("")
	s = s.Resolve(seq, nil)
	assert.Equal(t, StatusReady, s.Status)
	assert.NotNil(t, s.Items)
	assert.Empty(t, s.Items)
}

func TestRejectClearsItems(t *testing.T) {
	s, seq := State{}.Begin("")
	s = s.Reject(seq, "Failed to fetch trending content. Please try again later.")
	assert.Equal(t, StatusFailed, s.Status)
	assert.Empty(t, s.Items)
	assert.Equal(t, "Failed to fetch trending content. Please try again later.", s.ErrorMessage)
}

func TestTransitionsHappenOnce(t *testing.T) {
	s, seq := State{}.Begin("")
	s = s.Resolve(seq, []domain.ContentItem{begins})

	// A duplicate delivery cannot revert Ready to Failed
	s = s.Reject(seq, "boom")
	assert.Equal(t, StatusReady, s.Status)
	assert.Empty(t, s.ErrorMessage)

	s2, seq2 := State{}.Begin("")
	s2 = s2.Reject(seq2, "boom")
	s2 = s2.Resolve(seq2, []domain.ContentItem{begins})
	assert.Equal(t, StatusFailed, s2.Status)
	assert.Empty(t, s2.Items)
}

func TestRemountAfterFailureClearsError(t *testing.T) {
	s, seq := State{}.Begin("")
	s = s.Reject(seq, "boom")
	require.Equal(t, StatusFailed, s.Status)

	s, seq = s.Begin("")
	assert.Empty(t, s.ErrorMessage)
	s = s.Resolve(seq, []domain.ContentItem{series})
	assert.Equal(t, StatusReady, s.Status)
	assert.Empty(t, s.ErrorMessage)
	assert.Equal(t, []domain.ContentItem{series}, s.Items)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	s, first := State{}.Begin("bat")
	s, second := s.Begin("batman")
	require.NotEqual(t, first, second)

	// The older query answers last-but-one; it must not land
	s = s.Resolve(first, []domain.ContentItem{series})
	assert.Equal(t, StatusLoading, s.Status)
	assert.Nil(t, s.Items)

	s = s.Reject(first, "stale failure")
	assert.Equal(t, StatusLoading, s.Status)

	s = s.Resolve(second, []domain.ContentItem{begins})
	assert.Equal(t, []domain.ContentItem{begins}, s.Items)
	assert.Equal(t, "batman", s.Query)
}

func TestResetInvalidatesInFlight(t *testing.T) {
	s, seq := State{}.Begin("batman")
	s = s.Resolve(seq, []domain.ContentItem{begins})
	s = s.HoverEnter(begins.ID).Select(begins)

	s, inflight := s.Begin("joker")
	s = s.Reset()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.Items)
	assert.Empty(t, s.Query)
	assert.Zero(t, s.HoveredID)
	assert.Nil(t, s.Selected)

	s = s.Resolve(inflight, []domain.ContentItem{series})
	assert.Equal(t, StatusIdle, s.Status, "response for a reset view is dropped")
	assert.Empty(t, s.Items)
}

func TestBeginClearsUIState(t *testing.T) {
	s, seq := State{}.Begin("batman")
	s = s.Resolve(seq, []domain.ContentItem{begins, series})
	s = s.HoverEnter(series.ID).Select(series)

	s, _ = s.Begin("joker")
	assert.Zero(t, s.HoveredID)
	assert.Nil(t, s.Selected)
	assert.Nil(t, s.Items)
}

func TestHoverSingleFocus(t *testing.T) {
	s := State{Items: []domain.ContentItem{begins, series}}

	s = s.HoverEnter(begins.ID)
	assert.True(t, s.IsHovered(begins.ID))

	s = s.HoverEnter(series.ID)
	assert.False(t, s.IsHovered(begins.ID))
	assert.True(t, s.IsHovered(series.ID))

	item, ok := s.HoveredItem()
	require.True(t, ok)
	assert.Equal(t, series, item)
}

func TestHoverLeaveGuardsOtherCard(t *testing.T) {
	s := State{Items: []domain.ContentItem{begins, series}}

	// Pointer slides from card 1 onto card 2; the leave for 1 arrives late
	s = s.HoverEnter(begins.ID).HoverEnter(series.ID).HoverLeave(begins.ID)
	assert.Equal(t, series.ID, s.HoveredID)

	s = s.HoverLeave(series.ID)
	assert.Zero(t, s.HoveredID)
	_, ok := s.HoveredItem()
	assert.False(t, ok)
	assert.False(t, s.IsHovered(0))
}

func TestSelectAndClose(t *testing.T) {
	s := State{}.Select(series)
	require.NotNil(t, s.Selected)
	assert.Equal(t, "Batman", s.Selected.DisplayTitle())

	s = s.CloseSelection()
	assert.Nil(t, s.Selected)
}

func TestItemLookup(t *testing.T) {
	s := State{Items: []domain.ContentItem{begins, series}}
	got, ok := s.Item(2)
	require.True(t, ok)
	assert.Equal(t, series, got)

	_, ok = s.Item(99)
	assert.False(t, ok)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Idle", StatusIdle.String())
	assert.Equal(t, "Loading", StatusLoading.String())
	assert.Equal(t, "Ready", StatusReady.String())
	assert.Equal(t, "Failed", StatusFailed.String())
	assert.Equal(t, "Unknown", Status(42).String())
}
