package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"quotevault/internal/domain"
	"quotevault/internal/eventbus"
	"quotevault/internal/notify"
	"quotevault/internal/query"
)

// Failure notification text shown to the user
const (
	FailureTitle       = "Error"
	FailureDescription = "Failed to fetch quotes."
)

// Envelope ties an issued request to the snapshot it was built from
type Envelope struct {
	Sequence uint64
	Snapshot query.State
	Request  query.Request

	ctx      context.Context
	issuedAt time.Time
}

// Options configures an Orchestrator. Every field is optional.
type Options struct {
	// Timeout bounds each request; a request that does not resolve in time
	// settles as a network failure. Zero means no timeout.
	Timeout  time.Duration
	Bus      eventbus.EventBus
	Reporter notify.Reporter
	Logger   *zap.Logger
	// Context is the parent of every request context
	Context context.Context
}

// Orchestrator owns the search state and the request lifecycle:
// Idle -> Pending -> Success|Failure, with every trigger preempting whatever
// is in flight. A response is only applied if it belongs to the most recently
// issued request; anything older is dropped on arrival.
type Orchestrator struct {
	mu       sync.Mutex
	fetcher  Fetcher
	bus      eventbus.EventBus
	reporter notify.Reporter
	logger   *zap.Logger
	timeout  time.Duration
	parent   context.Context

	state      query.State
	seq        uint64
	settledSeq uint64
	cancel     context.CancelFunc
	outcome    Outcome
	settled    Outcome
	catalog    domain.FacetCatalog
}

// NewOrchestrator creates an orchestrator starting from initial
func NewOrchestrator(fetcher Fetcher, initial query.State, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	return &Orchestrator{
		fetcher:  fetcher,
		bus:      opts.Bus,
		reporter: opts.Reporter,
		logger:   logger.Named("orchestrator"),
		timeout:  opts.Timeout,
		parent:   parent,
		state:    initial,
	}
}

// State returns the current search intent
func (o *Orchestrator) State() query.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Outcome returns the currently published outcome
func (o *Orchestrator) Outcome() Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.outcome
}

// Settled returns the last non-pending outcome, for views that keep showing
// the previous results while a new request is in flight.
func (o *Orchestrator) Settled() Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.settled
}

// Catalog returns the facet catalog from the last accepted success
func (o *Orchestrator) Catalog() domain.FacetCatalog {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.catalog
}

// Sequence returns the highest sequence number issued so far
func (o *Orchestrator) Sequence() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.seq
}

// SetQuery replaces the query text and triggers a request
func (o *Orchestrator) SetQuery(text string) Envelope {
	return o.mutate(func(s query.State) query.State { return s.SetQuery(text) })
}

// ToggleCategory flips a category filter and triggers a request
func (o *Orchestrator) ToggleCategory(value string) Envelope {
	return o.mutate(func(s query.State) query.State { return s.ToggleCategory(value) })
}

// ToggleTag flips a tag filter and triggers a request
func (o *Orchestrator) ToggleTag(value string) Envelope {
	return o.mutate(func(s query.State) query.State { return s.ToggleTag(value) })
}

// SetSort replaces the sort key and triggers a request
func (o *Orchestrator) SetSort(key query.SortKey) Envelope {
	return o.mutate(func(s query.State) query.State { return s.SetSort(key) })
}

// SetPage moves to another page and triggers a request
func (o *Orchestrator) SetPage(page int) Envelope {
	return o.mutate(func(s query.State) query.State { return s.SetPage(page) })
}

// Refresh re-issues the current state, bypassing any response cache
func (o *Orchestrator) Refresh() Envelope {
	if f, ok := o.fetcher.(interface{ Flush() }); ok {
		f.Flush()
	}
	return o.mutate(func(s query.State) query.State { return s })
}

// Trigger issues a request for the current state without changing it
func (o *Orchestrator) Trigger() Envelope {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.triggerLocked(o.parent)
}

func (o *Orchestrator) mutate(fn func(query.State) query.State) Envelope {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = fn(o.state)
	return o.triggerLocked(o.parent)
}

func (o *Orchestrator) triggerLocked(parent context.Context) Envelope {
	// Superseded requests are cancelled at the transport; the sequence check
	// below still guards against ones that complete anyway.
	if o.cancel != nil {
		o.cancel()
	}

	o.seq++
	var ctx context.Context
	var cancel context.CancelFunc
	if o.timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, o.timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	o.cancel = cancel

	env := Envelope{
		Sequence: o.seq,
		Snapshot: o.state,
		Request:  query.Build(o.state),
		ctx:      ctx,
		issuedAt: time.Now(),
	}
	o.outcome = Outcome{Kind: OutcomePending, Sequence: env.Sequence}

	o.logger.Debug("search issued",
		zap.Uint64("seq", env.Sequence),
		zap.String("request", env.Request.Key()))
	if o.bus != nil {
		o.bus.Publish(eventbus.SearchIssuedEvent{Sequence: env.Sequence, Key: env.Request.Key()})
	}
	return env
}

// Execute performs the network call for env. It blocks and is meant to run
// off the UI goroutine; the result must be handed back through Resolve.
func (o *Orchestrator) Execute(env Envelope) (*Response, error) {
	if env.ctx == nil {
		return nil, errors.New("envelope was not issued by this orchestrator")
	}
	resp, err := o.fetcher.Fetch(env.ctx, env.Request)
	if err != nil && errors.Is(env.ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrNetworkUnavailable) {
		err = fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
	}
	return resp, err
}

// Resolve applies the result of env if env is still the latest request.
// It reports whether the result was accepted.
func (o *Orchestrator) Resolve(env Envelope, resp *Response, err error) bool {
	o.mu.Lock()

	if env.Sequence != o.seq || env.Sequence == o.settledSeq {
		latest := o.seq
		o.mu.Unlock()
		o.logger.Debug("discarding stale response",
			zap.Uint64("seq", env.Sequence),
			zap.Uint64("latest", latest))
		if o.bus != nil {
			o.bus.Publish(eventbus.StaleResponseDiscardedEvent{Sequence: env.Sequence, Latest: latest})
		}
		return false
	}

	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.settledSeq = env.Sequence
	elapsed := time.Since(env.issuedAt)

	if err == nil && resp == nil {
		err = fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	if err != nil {
		// Never show stale results next to an error; the catalog keeps its
		// last good value so filters stay usable.
		o.outcome = Outcome{Kind: OutcomeFailure, Sequence: env.Sequence, Reason: Reason(err)}
		o.settled = o.outcome
		o.mu.Unlock()

		o.logger.Warn("search failed",
			zap.Uint64("seq", env.Sequence),
			zap.String("kind", Kind(err)),
			zap.Error(err))
		if o.bus != nil {
			o.bus.Publish(eventbus.SearchSettledEvent{
				Sequence:  env.Sequence,
				Success:   false,
				ErrorKind: Kind(err),
				ElapsedMs: elapsed.Milliseconds(),
			})
		}
		if o.reporter != nil {
			o.reporter.Report(FailureTitle, FailureDescription, domain.SeverityError)
		}
		return true
	}

	o.catalog = resp.Facets
	o.outcome = Outcome{
		Kind:       OutcomeSuccess,
		Sequence:   env.Sequence,
		Quotes:     resp.Quotes,
		Facets:     resp.Facets,
		TotalCount: resp.TotalCount,
		Pagination: resp.PaginationFor(env.Snapshot),
	}
	o.settled = o.outcome
	o.mu.Unlock()

	o.logger.Debug("search settled",
		zap.Uint64("seq", env.Sequence),
		zap.Int("results", len(resp.Quotes)),
		zap.Int("total", resp.TotalCount),
		zap.Duration("elapsed", elapsed))
	if o.bus != nil {
		o.bus.Publish(eventbus.SearchSettledEvent{
			Sequence:   env.Sequence,
			Success:    true,
			ResultSize: len(resp.Quotes),
			TotalCount: resp.TotalCount,
			ElapsedMs:  elapsed.Milliseconds(),
		})
	}
	return true
}

// Search triggers, executes and resolves one request synchronously and
// returns whatever outcome is current afterwards. ctx bounds this call only.
func (o *Orchestrator) Search(ctx context.Context) Outcome {
	if ctx == nil {
		ctx = o.parent
	}
	o.mu.Lock()
	env := o.triggerLocked(ctx)
	o.mu.Unlock()

	resp, err := o.Execute(env)
	o.Resolve(env, resp, err)
	return o.Outcome()
}
