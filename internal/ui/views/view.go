package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quotevault/internal/domain"
	"quotevault/internal/fetch"
	"quotevault/internal/query"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Query     string
	Editing   bool
	InputView string

	Pending     bool
	SpinnerView string

	// Displayed outcome. While a request is pending this is the last settled one.
	Kind       fetch.OutcomeKind
	Quotes     []domain.Quote
	Reason     string
	TotalCount int
	Pagination domain.Pagination

	Facets        []FacetRow
	FacetCursor   int
	ResultCursor  int
	FacetsFocused bool

	Sort        query.SortKey
	Order       query.SortOrder
	SortPicking bool
	SortIndex   int

	Toast         string
	ToastSeverity domain.Severity

	HelpView string
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	facetRender  *FacetRenderer
	resultRender *ResultRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showTags, showCounts bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		facetRender:  NewFacetRenderer(styles, showCounts),
		resultRender: NewResultRenderer(styles, showTags),
		popupRender:  NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80 // Default terminal width
	}
	innerWidth := width - 4 // Account for main container padding

	var top strings.Builder
	top.WriteString(r.titleLine(state, innerWidth))
	top.WriteString("\n\n")
	top.WriteString(r.queryLine(state))
	top.WriteString("\n")
	top.WriteString(r.sortLine(state))
	top.WriteString("\n\n")
	top.WriteString(r.facetRender.Render(state.Facets, state.FacetCursor, state.FacetsFocused, innerWidth))
	top.WriteString("\n\n")

	var bottom strings.Builder
	if state.Toast != "" {
		bottom.WriteString(r.styles.ForSeverity(state.ToastSeverity).Render(state.Toast))
		bottom.WriteString("\n")
	}
	bottom.WriteString(state.HelpView)

	// Main has one line of padding at the top and bottom
	bodyHeight := state.Height - 2 - lipgloss.Height(top.String()) - lipgloss.Height(bottom.String()) - 1
	if bodyHeight < linesPerQuote {
		bodyHeight = linesPerQuote
	}

	var body string
	if state.SortPicking {
		body = r.popupRender.Center(
			r.popupRender.RenderSortPicker(state.SortIndex, state.Sort),
			innerWidth, bodyHeight)
	} else {
		body = r.body(state, innerWidth, bodyHeight)
	}

	return r.styles.Main.Render(top.String() + body + "\n\n" + bottom.String())
}

func (r *Renderer) titleLine(state ViewState, width int) string {
	logo := r.styles.Title.Render("quotevault")

	var right string
	switch {
	case state.Pending:
		right = r.styles.StatusLoading.Render(state.SpinnerView + " Searching…")
	case state.Kind == fetch.OutcomeSuccess:
		noun := "quotes"
		if state.TotalCount == 1 {
			noun = "quote"
		}
		right = r.styles.Dim.Render(fmt.Sprintf("%d %s", state.TotalCount, noun))
	case state.Kind == fetch.OutcomeFailure:
		right = r.styles.StatusError.Render("✗ error")
	}
	if right == "" {
		return logo
	}

	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) queryLine(state ViewState) string {
	label := r.styles.Label.Render("Search: ")
	if state.Editing {
		return label + state.InputView
	}
	if state.Query == "" {
		return label + r.styles.Dim.Render("press / to search quotes, authors and tags")
	}
	return label + r.styles.Query.Render(state.Query)
}

func (r *Renderer) sortLine(state ViewState) string {
	line := r.styles.Label.Render("Sort: ") + state.Sort.Label()
	if state.Order != "" {
		line += r.styles.Dim.Render(" (" + string(state.Order) + ")")
	}
	p := state.Pagination
	if state.Kind == fetch.OutcomeSuccess && p.TotalPages > 1 {
		line += r.styles.Dim.Render(fmt.Sprintf("   Page %d of %d", p.Page, p.TotalPages))
		var nav []string
		if p.HasPrev {
			nav = append(nav, "p prev")
		}
		if p.HasNext {
			nav = append(nav, "n next")
		}
		if len(nav) > 0 {
			line += r.styles.Help.Render("  [" + strings.Join(nav, " · ") + "]")
		}
	}
	return line
}

func (r *Renderer) body(state ViewState, width, height int) string {
	switch state.Kind {
	case fetch.OutcomeIdle:
		return r.styles.Dim.Render("Loading quotes…")
	case fetch.OutcomeFailure:
		return r.styles.StatusError.Render(state.Reason) + "\n" +
			r.styles.Help.Render("press r to retry")
	default:
		return r.resultRender.Render(state.Quotes, state.ResultCursor, !state.FacetsFocused, state.Pending, width, height)
	}
}
