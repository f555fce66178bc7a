package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quotevault/internal/ui/input/types"
)

// QueryMode edits the free text query. Every edit is applied as it happens,
// so leaving the mode keeps the text rather than reverting it.
type QueryMode struct {
	input *textinput.Model
}

func NewQueryMode(ti *textinput.Model) *QueryMode {
	return &QueryMode{input: ti}
}

func (m *QueryMode) Name() string {
	return "query"
}

// Enter seeds the input with the current query and puts the cursor after it.
// The prompt is drawn by the search bar view.
func (m *QueryMode) Enter(ctx types.Context) []types.Action {
	if m.input == nil {
		return nil
	}
	m.input.Prompt = ""
	m.input.SetValue(ctx.Query())
	m.input.CursorEnd()
	return nil
}

func (m *QueryMode) Exit(ctx types.Context) []types.Action {
	if m.input != nil {
		m.input.Blur()
	}
	return nil
}

func (m *QueryMode) value() string {
	if m.input == nil {
		return ""
	}
	return m.input.Value()
}

// HandleKey claims only the keys that leave the mode. Anything else goes to
// the text input, including q.
func (m *QueryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	back := types.ChangeModeAction{Mode: types.ModeNormal}

	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{types.CancelTextAction{}, back}, true
	case "enter":
		return []types.Action{types.SubmitTextAction{Text: m.value(), Mode: types.ModeQuery}, back}, true
	}
	return nil, false
}
