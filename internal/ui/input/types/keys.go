package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings. It doubles as the help.KeyMap
// rendered in the footer.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	SwitchFocus key.Binding
	Toggle      key.Binding
	Search      key.Binding
	Sort        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Refresh     key.Binding
	Copy        key.Binding
	Share       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "facets/results"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle filter"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy quote"),
		),
		Share: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "share quote"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.SwitchFocus, k.Toggle, k.Sort, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchFocus, k.Toggle},
		{k.Search, k.Sort, k.NextPage, k.PrevPage, k.Refresh},
		{k.Copy, k.Share, k.Help, k.Quit},
	}
}
