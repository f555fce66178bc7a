package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotevault/internal/domain"
	"quotevault/internal/query"
	"quotevault/internal/ui/input/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newHandler() *Handler {
	return New(types.DefaultKeyMap())
}

func TestNormalModeBindings(t *testing.T) {
	quote := domain.Quote{ID: "7", Text: "Hello", Author: "Someone"}
	ctx := &ModelContext{
		Quote:      &quote,
		Pagination: domain.Pagination{HasNext: true},
	}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want types.Action
	}{
		{"down", tea.KeyMsg{Type: tea.KeyDown}, types.NavigateAction{Direction: "down"}},
		{"k", runes("k"), types.NavigateAction{Direction: "up"}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, types.SwitchFocusAction{}},
		{"next page", runes("n"), types.PageAction{Delta: 1}},
		{"refresh", runes("r"), types.RefreshAction{}},
		{"copy", runes("y"), types.CopyQuoteAction{Quote: quote}},
		{"share", runes("S"), types.ShareQuoteAction{Quote: quote}},
		{"help", runes("?"), types.ToggleHelpAction{}},
		{"quit", runes("q"), types.QuitAction{}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, types.QuitAction{Force: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler()
			actions, _ := h.HandleKey(tt.msg, ctx)
			require.Len(t, actions, 1)
			assert.Equal(t, tt.want, actions[0])
			assert.Equal(t, types.ModeNormal, h.CurrentMode())
		})
	}
}

func TestNormalModeIgnoresUnavailableActions(t *testing.T) {
	h := newHandler()
	ctx := &ModelContext{}

	for _, k := range []string{"n", "p", "y", "S", " ", "x"} {
		actions, _ := h.HandleKey(runes(k), ctx)
		assert.Empty(t, actions, "key %q", k)
	}
}

func TestToggleOnlyInFacets(t *testing.T) {
	h := newHandler()
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	ctx := &ModelContext{OnFacet: true, Kind: domain.FacetTag, Value: "life"}
	actions, _ := h.HandleKey(space, ctx)
	assert.Empty(t, actions)

	ctx.CurrentFocus = types.FocusFacets
	actions, _ = h.HandleKey(space, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.ToggleFacetAction{Kind: domain.FacetTag, Value: "life"}, actions[0])
}

func TestQueryModeTyping(t *testing.T) {
	h := newHandler()
	ctx := &ModelContext{QueryText: "lo"}

	actions, _ := h.HandleKey(runes("/"), ctx)
	assert.Empty(t, actions)
	require.Equal(t, types.ModeQuery, h.CurrentMode())
	assert.Equal(t, "query", h.ModeName())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "lo", h.TextInput().Value())

	actions, _ = h.HandleKey(runes("v"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "lov"}, actions[0])

	// Bindings are plain text while typing
	actions, _ = h.HandleKey(runes("q"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "lovq"}, actions[0])

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.SubmitTextAction{Text: "lovq", Mode: types.ModeQuery}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestQueryModeEscape(t *testing.T) {
	h := newHandler()
	ctx := &ModelContext{}

	h.HandleKey(runes("/"), ctx)
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.CancelTextAction{}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestSortMode(t *testing.T) {
	h := newHandler()
	ctx := &ModelContext{Sort: query.SortAuthor}

	actions, _ := h.HandleKey(runes("o"), ctx)
	require.Equal(t, types.ModeSort, h.CurrentMode())
	// Entering highlights the active key
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateSortIndexAction{Index: 2}, actions[0])

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	assert.Equal(t, []types.Action{types.UpdateSortIndexAction{Index: 3}}, actions)

	// Wraps around
	actions, _ = h.HandleKey(runes("j"), ctx)
	assert.Equal(t, []types.Action{types.UpdateSortIndexAction{Index: 0}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SortByAction{Key: query.SortPopularity}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestSortModeSameKeyIsNoop(t *testing.T) {
	h := newHandler()
	ctx := &ModelContext{Sort: query.SortRecent}

	h.HandleKey(runes("o"), ctx)
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestReset(t *testing.T) {
	h := newHandler()
	h.HandleKey(runes("/"), &ModelContext{QueryText: "abc"})

	h.Reset()
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}
