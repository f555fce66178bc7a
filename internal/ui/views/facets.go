package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quotevault/internal/domain"
	"quotevault/internal/query"
)

// FacetRow is one toggleable filter button
type FacetRow struct {
	Kind     domain.FacetKind
	Value    string
	Count    int
	HasCount bool // false when the value is selected but missing from the catalog
	Selected bool
}

// Label renders the button text, e.g. "Wisdom (5)"
func (f FacetRow) Label(showCounts bool) string {
	if showCounts && f.HasCount {
		return fmt.Sprintf("%s (%d)", f.Value, f.Count)
	}
	return f.Value
}

// BuildFacetRows lists categories then tags in catalog order. Selected
// values the catalog no longer mentions are kept so they can be unselected.
func BuildFacetRows(catalog domain.FacetCatalog, state query.State) []FacetRow {
	rows := facetRows(domain.FacetCategory, catalog.Categories, state.Categories(), state.HasCategory)
	return append(rows, facetRows(domain.FacetTag, catalog.Tags, state.Tags(), state.HasTag)...)
}

func facetRows(kind domain.FacetKind, buckets []domain.FacetBucket, selected []string, isSelected func(string) bool) []FacetRow {
	rows := make([]FacetRow, 0, len(buckets)+len(selected))
	seen := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		seen[b.Value] = true
		rows = append(rows, FacetRow{
			Kind:     kind,
			Value:    b.Value,
			Count:    b.Count,
			HasCount: true,
			Selected: isSelected(b.Value),
		})
	}
	for _, v := range selected {
		if !seen[v] {
			rows = append(rows, FacetRow{Kind: kind, Value: v, Selected: true})
		}
	}
	return rows
}

// FacetRenderer draws the filter panel as wrapped rows of buttons
type FacetRenderer struct {
	styles     *Styles
	showCounts bool
}

// NewFacetRenderer creates a new facet renderer
func NewFacetRenderer(styles *Styles, showCounts bool) *FacetRenderer {
	return &FacetRenderer{styles: styles, showCounts: showCounts}
}

// Render draws both sections. cursor indexes rows and is only drawn when focused.
func (r *FacetRenderer) Render(rows []FacetRow, cursor int, focused bool, width int) string {
	var b strings.Builder
	header := r.styles.Section
	if focused {
		header = r.styles.SectionFocus
	}

	for _, kind := range []domain.FacetKind{domain.FacetCategory, domain.FacetTag} {
		var buttons []string
		for i, row := range rows {
			if row.Kind != kind {
				continue
			}
			buttons = append(buttons, r.button(row, focused && i == cursor))
		}

		title := "Categories"
		if kind == domain.FacetTag {
			title = "Tags"
		}
		b.WriteString(header.Render(title))
		b.WriteString("\n")
		if len(buttons) == 0 {
			b.WriteString(r.styles.Dim.Render("  none"))
			b.WriteString("\n")
			continue
		}
		b.WriteString(wrap(buttons, width))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (r *FacetRenderer) button(row FacetRow, atCursor bool) string {
	mark := "○"
	style := r.styles.Facet
	if row.Selected {
		mark = "●"
		style = r.styles.FacetSelected
	}
	text := style.Render(mark + " " + row.Value)
	if r.showCounts && row.HasCount {
		text += r.styles.Count.Render(fmt.Sprintf(" (%d)", row.Count))
	}
	if atCursor {
		text = r.styles.Cursor.Render(text)
	}
	return text
}

// wrap lays buttons out left to right, breaking lines at width
func wrap(buttons []string, width int) string {
	if width <= 0 {
		width = 80
	}
	var lines []string
	line := " "
	for _, btn := range buttons {
		if lipgloss.Width(line)+lipgloss.Width(btn)+2 > width && strings.TrimSpace(line) != "" {
			lines = append(lines, line)
			line = " "
		}
		line += " " + btn
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
