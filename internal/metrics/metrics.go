// Package metrics exposes search pipeline counters for prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"quotevault/internal/eventbus"
)

// Recorder turns bus events into prometheus series
type Recorder struct {
	registry *prometheus.Registry

	issued    prometheus.Counter
	discarded prometheus.Counter
	outcomes  *prometheus.CounterVec
	duration  prometheus.Histogram
	shared    *prometheus.CounterVec

	unsubscribe []func()
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		issued: factory.NewCounter(prometheus.CounterOpts{
			Name: "quotevault_searches_issued_total",
			Help: "The total number of search requests issued",
		}),
		discarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "quotevault_responses_discarded_total",
			Help: "The total number of responses dropped because a newer request superseded them",
		}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quotevault_outcomes_total",
			Help: "Settled searches by result",
		}, []string{"result"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "quotevault_search_duration_seconds",
			Help:    "Time from issuing a search to accepting its outcome",
			Buckets: prometheus.DefBuckets,
		}),
		shared: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quotevault_quotes_shared_total",
			Help: "Quotes handed to the clipboard or native share",
		}, []string{"via"}),
	}
}

// Registry returns the registry holding every series
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Attach subscribes the recorder to bus
func (r *Recorder) Attach(bus eventbus.EventBus) {
	r.unsubscribe = append(r.unsubscribe,
		bus.Subscribe(eventbus.EventSearchIssued, r.Handle),
		bus.Subscribe(eventbus.EventSearchSettled, r.Handle),
		bus.Subscribe(eventbus.EventStaleResponseDiscarded, r.Handle),
		bus.Subscribe(eventbus.EventQuoteShared, r.Handle),
	)
}

// Detach removes every subscription made by Attach
func (r *Recorder) Detach() {
	for _, unsub := range r.unsubscribe {
		unsub()
	}
	r.unsubscribe = nil
}

// Handle records one event
func (r *Recorder) Handle(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.SearchIssuedEvent:
		r.issued.Inc()
	case eventbus.StaleResponseDiscardedEvent:
		r.discarded.Inc()
	case eventbus.SearchSettledEvent:
		result := "success"
		if !e.Success {
			result = e.ErrorKind
			if result == "" {
				result = "unknown"
			}
		}
		r.outcomes.WithLabelValues(result).Inc()
		r.duration.Observe((time.Duration(e.ElapsedMs) * time.Millisecond).Seconds())
	case eventbus.QuoteSharedEvent:
		via := "share"
		if e.Copied {
			via = "clipboard"
		}
		r.shared.WithLabelValues(via).Inc()
	}
}

// Handler serves the registry in the prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done
func (r *Recorder) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
