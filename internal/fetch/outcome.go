package fetch

import "quotevault/internal/domain"

// OutcomeKind tags the Outcome variant
type OutcomeKind int

const (
	OutcomeIdle OutcomeKind = iota
	OutcomePending
	OutcomeSuccess
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePending:
		return "pending"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "idle"
	}
}

// Outcome is the single value the rendering layer observes. Only the fields
// belonging to Kind are meaningful: Quotes/Facets/TotalCount/Pagination for
// success, Reason for failure.
type Outcome struct {
	Kind       OutcomeKind
	Sequence   uint64
	Quotes     []domain.Quote
	Facets     domain.FacetCatalog
	TotalCount int
	Pagination domain.Pagination
	Reason     string
}

func (o Outcome) IsPending() bool { return o.Kind == OutcomePending }
func (o Outcome) IsSuccess() bool { return o.Kind == OutcomeSuccess }
func (o Outcome) IsFailure() bool { return o.Kind == OutcomeFailure }
