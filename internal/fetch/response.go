package fetch

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"

	"quotevault/internal/domain"
	"quotevault/internal/query"
)

// Response is a validated search response
type Response struct {
	Quotes     []domain.Quote
	Facets     domain.FacetCatalog
	TotalCount int
	// Pagination is nil when the server sent no pagination block
	Pagination *domain.Pagination
}

// PaginationFor returns the server's pagination block, or one derived from the
// snapshot and total count when the server omitted it.
func (r *Response) PaginationFor(s query.State) domain.Pagination {
	if r.Pagination != nil {
		return *r.Pagination
	}
	p := domain.Pagination{
		Page:       s.Page(),
		Limit:      s.Limit(),
		TotalCount: r.TotalCount,
	}
	if p.Limit > 0 {
		p.TotalPages = (p.TotalCount + p.Limit - 1) / p.Limit
	}
	p.HasNext = p.Page < p.TotalPages
	p.HasPrev = p.Page > 1
	return p
}

// Wire shapes. Loosely typed on purpose: validation happens in toDomain.

type wireResponse struct {
	Quotes     *[]wireQuote    `json:"quotes"`
	Results    *[]wireQuote    `json:"results"`
	Facets     *wireFacets     `json:"facets"`
	Pagination *wirePagination `json:"pagination"`
	Count      *int            `json:"count"`
}

type wireQuote struct {
	ID       flexibleID `json:"id"`
	Quote    *string    `json:"quote"`
	Author   string     `json:"author"`
	Category *string    `json:"category"`
	Tags     []string   `json:"tags"`
}

type wireFacets struct {
	Categories []wireBucket `json:"categories"`
	Tags       []wireBucket `json:"tags"`
}

type wireBucket struct {
	Value *string `json:"value"`
	Count int     `json:"count"`
}

type wirePagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"total_pages"`
	TotalCount int  `json:"total_count"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// flexibleID accepts both JSON strings and numbers; the backend sends integer ids.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
	case data[0] == '"':
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return fmt.Errorf("id is neither string nor number: %s", data)
		}
		*id = flexibleID(data)
	}
	return nil
}

// DecodeResponse parses and validates a search response body
func DecodeResponse(body []byte) (*Response, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrMalformedResponse)
	}

	var wire wireResponse
	if err := sonic.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return wire.toDomain()
}

func (w *wireResponse) toDomain() (*Response, error) {
	// quotes wins over results, including when it is an empty array
	var raw []wireQuote
	switch {
	case w.Quotes != nil:
		raw = *w.Quotes
	case w.Results != nil:
		raw = *w.Results
	}

	resp := &Response{Quotes: make([]domain.Quote, 0, len(raw))}
	for i, q := range raw {
		if q.Quote == nil || *q.Quote == "" {
			return nil, fmt.Errorf("%w: result %d has no quote text", ErrMalformedResponse, i)
		}
		quote := domain.Quote{
			ID:     string(q.ID),
			Text:   *q.Quote,
			Author: q.Author,
			Tags:   append([]string{}, q.Tags...),
		}
		if q.Category != nil {
			quote.Category = *q.Category
		}
		resp.Quotes = append(resp.Quotes, quote)
	}

	if w.Facets != nil {
		var err error
		if resp.Facets.Categories, err = buckets(w.Facets.Categories, domain.FacetCategory); err != nil {
			return nil, err
		}
		if resp.Facets.Tags, err = buckets(w.Facets.Tags, domain.FacetTag); err != nil {
			return nil, err
		}
	}

	switch {
	case w.Pagination != nil:
		if w.Pagination.TotalCount < 0 {
			return nil, fmt.Errorf("%w: negative total_count", ErrMalformedResponse)
		}
		resp.TotalCount = w.Pagination.TotalCount
		resp.Pagination = &domain.Pagination{
			Page:       w.Pagination.Page,
			Limit:      w.Pagination.Limit,
			TotalPages: w.Pagination.TotalPages,
			TotalCount: w.Pagination.TotalCount,
			HasNext:    w.Pagination.HasNext,
			HasPrev:    w.Pagination.HasPrev,
		}
	case w.Count != nil && *w.Count >= 0:
		resp.TotalCount = *w.Count
	}

	return resp, nil
}

func buckets(raw []wireBucket, kind domain.FacetKind) ([]domain.FacetBucket, error) {
	out := make([]domain.FacetBucket, 0, len(raw))
	for i, b := range raw {
		if b.Value == nil || *b.Value == "" {
			return nil, fmt.Errorf("%w: %s bucket %d has no value", ErrMalformedResponse, kind, i)
		}
		if b.Count < 0 {
			return nil, fmt.Errorf("%w: %s bucket %q has negative count", ErrMalformedResponse, kind, *b.Value)
		}
		out = append(out, domain.FacetBucket{Value: *b.Value, Count: b.Count})
	}
	return out, nil
}
