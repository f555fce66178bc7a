package input

import (
	"quotevault/internal/domain"
	"quotevault/internal/query"
	"quotevault/internal/ui/input/types"
)

// ModelContext implements the Context interface for the input handler.
// The model fills one in before every key press.
type ModelContext struct {
	CurrentFocus types.Focus
	QueryText    string
	Sort         query.SortKey
	Pagination   domain.Pagination

	Quote   *domain.Quote
	OnFacet bool
	Kind    domain.FacetKind
	Value   string
}

func (c *ModelContext) Focus() types.Focus {
	return c.CurrentFocus
}

func (c *ModelContext) Query() string {
	return c.QueryText
}

func (c *ModelContext) CurrentSort() query.SortKey {
	return c.Sort
}

// CurrentQuote returns the quote under the result cursor
func (c *ModelContext) CurrentQuote() (domain.Quote, bool) {
	if c.Quote == nil {
		return domain.Quote{}, false
	}
	return *c.Quote, true
}

// CurrentFacet returns the facet button under the facet cursor
func (c *ModelContext) CurrentFacet() (domain.FacetKind, string, bool) {
	return c.Kind, c.Value, c.OnFacet
}

func (c *ModelContext) HasNextPage() bool {
	return c.Pagination.HasNext
}

func (c *ModelContext) HasPrevPage() bool {
	return c.Pagination.HasPrev
}
