package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"quotevault/internal/query"
	"quotevault/internal/ui/input/types"
)

// SortSelectMode is the sort picker. Moving only highlights an option;
// enter applies it.
type SortSelectMode struct {
	sortIndex int
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	m.sortIndex = 0
	for i, key := range query.SortKeys {
		if key == ctx.CurrentSort() {
			m.sortIndex = i
			break
		}
	}
	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// HandleKey processes key messages for sort selection
func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q", "o":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case "enter", " ":
		actions := []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}
		if selected := query.SortKeys[m.sortIndex]; selected != ctx.CurrentSort() {
			actions = append(actions, types.SortByAction{Key: selected})
		}
		return actions, true

	case "up", "k":
		m.sortIndex--
		if m.sortIndex < 0 {
			m.sortIndex = len(query.SortKeys) - 1
		}
		return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}, true

	case "down", "j":
		m.sortIndex++
		if m.sortIndex >= len(query.SortKeys) {
			m.sortIndex = 0
		}
		return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}, true
	}

	return nil, true
}
