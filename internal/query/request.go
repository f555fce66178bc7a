package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchPath is the endpoint every request targets
const SearchPath = "/api/search"

// Parameter names understood by the search endpoint
const (
	ParamQuery      = "q"
	ParamPage       = "page"
	ParamLimit      = "limit"
	ParamSort       = "sort"
	ParamOrder      = "order"
	ParamFacets     = "facets"
	ParamCategories = "categories[]"
	ParamTags       = "tags[]"
)

// Param is a single query parameter. Order is significant.
type Param struct {
	Name  string
	Value string
}

// Request is a serialized request descriptor
type Request struct {
	Path   string
	Params []Param
}

// Build translates a snapshot into a request descriptor. It is pure and total:
// equal snapshots always produce byte-identical encodings.
func Build(s State) Request {
	params := make([]Param, 0, 6+len(s.categories)+len(s.tags))
	params = append(params,
		Param{ParamPage, strconv.Itoa(s.page)},
		Param{ParamLimit, strconv.Itoa(s.limit)},
		Param{ParamSort, string(s.sort)},
		Param{ParamOrder, string(s.order)},
		Param{ParamFacets, "true"},
	)
	// q is omitted entirely, not sent empty, when there is no text filter.
	// It sits directly ahead of the repeated filters.
	if q := s.TrimmedQuery(); q != "" {
		params = append(params, Param{ParamQuery, q})
	}
	for _, c := range s.categories {
		params = append(params, Param{ParamCategories, c})
	}
	for _, t := range s.tags {
		params = append(params, Param{ParamTags, t})
	}

	return Request{Path: SearchPath, Params: params}
}

// Encode returns the percent-encoded query string in parameter order.
// url.Values is not used because it sorts keys.
func (r Request) Encode() string {
	var b strings.Builder
	for i, p := range r.Params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Key identifies the request for caching and response matching
func (r Request) Key() string {
	return r.Path + "?" + r.Encode()
}

// Get returns the first value for name
func (r Request) Get(name string) (string, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// All returns every value for name in order
func (r Request) All(name string) []string {
	var out []string
	for _, p := range r.Params {
		if p.Name == name {
			out = append(out, p.Value)
		}
	}
	return out
}

// URL joins base (scheme://host[/prefix]) with the request path and query
func (r Request) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid endpoint %q: scheme and host required", base)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + r.Path
	u.RawQuery = r.Encode()
	return u.String(), nil
}
