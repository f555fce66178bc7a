package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quotevault/internal/query"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderSortPicker lists the sort keys with the highlighted one marked and
// the active one flagged
func (pr *PopupRenderer) RenderSortPicker(highlighted int, active query.SortKey) string {
	var b strings.Builder
	b.WriteString(pr.styles.Section.Render("Sort by"))
	b.WriteString("\n")
	for i, key := range query.SortKeys {
		line := "  " + key.Label()
		if key == active {
			line += pr.styles.Dim.Render(" (current)")
		}
		if i == highlighted {
			line = pr.styles.Cursor.Render("▸ " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(pr.styles.Help.Render("enter apply · esc cancel"))
	return pr.styles.Popup.Render(b.String())
}

// Center places popup in the middle of a width x height area
func (pr *PopupRenderer) Center(popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return popup
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}
