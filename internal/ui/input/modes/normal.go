package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"quotevault/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.SwitchFocus):
		return []types.Action{types.SwitchFocusAction{}}, true

	case key.Matches(msg, m.keys.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeQuery}}, true

	case key.Matches(msg, m.keys.Sort):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true

	case key.Matches(msg, m.keys.Toggle):
		if ctx.Focus() != types.FocusFacets {
			return nil, false
		}
		if kind, value, ok := ctx.CurrentFacet(); ok {
			return []types.Action{types.ToggleFacetAction{Kind: kind, Value: value}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.NextPage):
		if ctx.HasNextPage() {
			return []types.Action{types.PageAction{Delta: 1}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.PrevPage):
		if ctx.HasPrevPage() {
			return []types.Action{types.PageAction{Delta: -1}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.Refresh):
		return []types.Action{types.RefreshAction{}}, true

	case key.Matches(msg, m.keys.Copy):
		if q, ok := ctx.CurrentQuote(); ok {
			return []types.Action{types.CopyQuoteAction{Quote: q}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.Share):
		if q, ok := ctx.CurrentQuote(); ok {
			return []types.Action{types.ShareQuoteAction{Quote: q}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
