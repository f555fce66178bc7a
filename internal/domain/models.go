package domain

// Quote is a single search result. Immutable once received.
type Quote struct {
	ID       string
	Text     string
	Author   string
	Category string
	Tags     []string
}

// FacetBucket is a filterable value with its server-computed count
type FacetBucket struct {
	Value string
	Count int
}

// FacetKind identifies which facet group a value belongs to
type FacetKind int

const (
	FacetCategory FacetKind = iota
	FacetTag
)

func (k FacetKind) String() string {
	switch k {
	case FacetCategory:
		return "category"
	case FacetTag:
		return "tag"
	default:
		return "unknown"
	}
}

// FacetCatalog holds the facet buckets returned by the last accepted response.
// It is replaced wholesale, never patched: counts only make sense relative to
// the query that produced them.
type FacetCatalog struct {
	Categories []FacetBucket
	Tags       []FacetBucket
}

// Buckets returns the buckets for the given kind
func (c FacetCatalog) Buckets(kind FacetKind) []FacetBucket {
	if kind == FacetTag {
		return c.Tags
	}
	return c.Categories
}

// Bucket looks up a value. A selected value missing from the catalog is legal;
// callers render it without a count.
func (c FacetCatalog) Bucket(kind FacetKind, value string) (FacetBucket, bool) {
	for _, b := range c.Buckets(kind) {
		if b.Value == value {
			return b, true
		}
	}
	return FacetBucket{}, false
}

// IsEmpty reports whether the catalog has no buckets at all
func (c FacetCatalog) IsEmpty() bool {
	return len(c.Categories) == 0 && len(c.Tags) == 0
}

// Pagination mirrors the pagination block of a search response
type Pagination struct {
	Page       int
	Limit      int
	TotalPages int
	TotalCount int
	HasNext    bool
	HasPrev    bool
}
