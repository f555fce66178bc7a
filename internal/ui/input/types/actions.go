package types

import (
	"quotevault/internal/domain"
	"quotevault/internal/query"
)

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type SwitchFocusAction struct{}

func (a SwitchFocusAction) Type() string { return "switch_focus" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Search actions
type ToggleFacetAction struct {
	Kind  domain.FacetKind
	Value string
}

func (a ToggleFacetAction) Type() string { return "toggle_facet" }

type SortByAction struct {
	Key query.SortKey
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }

type PageAction struct {
	Delta int
}

func (a PageAction) Type() string { return "page" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

// Quote actions
type CopyQuoteAction struct {
	Quote domain.Quote
}

func (a CopyQuoteAction) Type() string { return "copy_quote" }

type ShareQuoteAction struct {
	Quote domain.Quote
}

func (a ShareQuoteAction) Type() string { return "share_quote" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
