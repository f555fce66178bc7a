// Package query holds the user's search intent and turns it into request
// descriptors for the search endpoint.
package query

import (
	"fmt"
	"strings"
)

// SortKey is the server-side sort criterion
type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortRecent     SortKey = "recent"
	SortAuthor     SortKey = "author"
	SortLength     SortKey = "length"
)

// SortKeys lists sort keys in display order
var SortKeys = []SortKey{SortPopularity, SortRecent, SortAuthor, SortLength}

// Label returns the human readable name used by the UI
func (k SortKey) Label() string {
	switch k {
	case SortPopularity:
		return "Most Popular"
	case SortRecent:
		return "Most Recent"
	case SortAuthor:
		return "Author A-Z"
	case SortLength:
		return "Shortest First"
	default:
		return string(k)
	}
}

// ParseSortKey validates a sort key name
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// SortOrder is the sort direction
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOrder validates a sort order name
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case OrderAsc, OrderDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// State is an immutable snapshot of the search intent. Every mutator returns a
// new State and leaves the receiver untouched, so a captured snapshot can never
// change under an in-flight request.
type State struct {
	query      string
	categories []string
	tags       []string
	sort       SortKey
	order      SortOrder
	page       int
	limit      int
}

// NewState returns the initial state: empty query, no filters, popularity desc, page 1 of 20.
func NewState() State {
	return State{
		sort:  SortPopularity,
		order: OrderDesc,
		page:  DefaultPage,
		limit: DefaultLimit,
	}
}

func (s State) Query() string        { return s.query }
func (s State) Sort() SortKey        { return s.sort }
func (s State) Order() SortOrder     { return s.order }
func (s State) Page() int            { return s.page }
func (s State) Limit() int           { return s.limit }
func (s State) Categories() []string { return append([]string(nil), s.categories...) }
func (s State) Tags() []string       { return append([]string(nil), s.tags...) }

// TrimmedQuery is the query as sent to the server
func (s State) TrimmedQuery() string {
	return strings.TrimSpace(s.query)
}

// HasCategory reports whether a category is selected
func (s State) HasCategory(value string) bool {
	return indexOf(s.categories, value) >= 0
}

// HasTag reports whether a tag is selected
func (s State) HasTag(value string) bool {
	return indexOf(s.tags, value) >= 0
}

// SetQuery replaces the query text verbatim. Trimming happens at build time.
func (s State) SetQuery(text string) State {
	s.query = text
	s.page = DefaultPage
	return s
}

// ToggleCategory adds the value if absent and removes it if present
func (s State) ToggleCategory(value string) State {
	s.categories = toggle(s.categories, value)
	s.page = DefaultPage
	return s
}

// ToggleTag adds the value if absent and removes it if present
func (s State) ToggleTag(value string) State {
	s.tags = toggle(s.tags, value)
	s.page = DefaultPage
	return s
}

// SetSort replaces the sort key. The order is left alone.
func (s State) SetSort(key SortKey) State {
	s.sort = key
	s.page = DefaultPage
	return s
}

// SetOrder replaces the sort direction
func (s State) SetOrder(order SortOrder) State {
	s.order = order
	s.page = DefaultPage
	return s
}

// SetPage moves the pagination window. Values below 1 are clamped.
func (s State) SetPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.page = page
	return s
}

// SetLimit changes the page size. Non-positive values fall back to the default.
func (s State) SetLimit(limit int) State {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s.limit = limit
	s.page = DefaultPage
	return s
}

// Equal reports whether two snapshots describe the same intent
func (s State) Equal(o State) bool {
	return s.query == o.query &&
		s.sort == o.sort &&
		s.order == o.order &&
		s.page == o.page &&
		s.limit == o.limit &&
		equalStrings(s.categories, o.categories) &&
		equalStrings(s.tags, o.tags)
}

// toggle never mutates the input slice; snapshots may share backing arrays.
func toggle(values []string, value string) []string {
	if i := indexOf(values, value); i >= 0 {
		out := make([]string, 0, len(values)-1)
		out = append(out, values[:i]...)
		return append(out, values[i+1:]...)
	}
	out := make([]string, 0, len(values)+1)
	out = append(out, values...)
	return append(out, value)
}

func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
