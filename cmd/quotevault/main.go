// Command quotevault-query runs a single search against the quotes service
// and prints the results, for scripts and quick checks.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"quotevault/internal/config"
	"quotevault/internal/fetch"
	"quotevault/internal/logging"
	"quotevault/internal/notify"
	"quotevault/internal/query"
)

// multiFlag collects a flag that may be given more than once
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

type options struct {
	configPath string
	endpoint   string
	query      string
	categories multiFlag
	tags       multiFlag
	sort       string
	order      string
	page       int
	limit      int
	facets     bool
	check      bool
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config file")
	flag.StringVar(&opts.endpoint, "endpoint", "", "Search service base URL, overrides the config file")
	flag.StringVar(&opts.query, "q", "", "Free-text query")
	flag.Var(&opts.categories, "category", "Category filter (repeatable)")
	flag.Var(&opts.tags, "tag", "Tag filter (repeatable)")
	flag.StringVar(&opts.sort, "sort", "", "Sort key: popularity, recent, author or length")
	flag.StringVar(&opts.order, "order", "", "Sort order: asc or desc")
	flag.IntVar(&opts.page, "page", query.DefaultPage, "Page number")
	flag.IntVar(&opts.limit, "limit", 0, "Results per page (default from config)")
	flag.BoolVar(&opts.facets, "facets", false, "Print facet counts")
	flag.BoolVar(&opts.check, "check", false, "Check that the search service is up and exit")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.Parse()

	os.Exit(run(opts, os.Stdout))
}

func run(opts options, stdout io.Writer) int {
	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.NewConsole(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.NewConfigServiceWithBus(opts.configPath, nil).Load()
	if err != nil {
		logger.Error("failed to load config", zap.Error(err))
		return 1
	}
	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
		if err := cfg.Validate(); err != nil {
			logger.Error("invalid endpoint", zap.Error(err))
			return 1
		}
	}

	state, err := buildState(cfg, opts)
	if err != nil {
		logger.Error("invalid search flags", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher := fetch.NewHTTPFetcher(cfg.Endpoint, &http.Client{}, logger)
	p := newPrinter(stdout)

	if opts.check {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		msg, err := fetcher.Health(ctx)
		if err != nil {
			p.failure(fetcher.Endpoint() + ": " + fetch.Reason(err))
			return 1
		}
		p.healthy(fetcher.Endpoint(), msg)
		return 0
	}

	timeout, _ := cfg.Search.TimeoutDuration()
	orch := fetch.NewOrchestrator(fetcher, state, fetch.Options{
		Timeout:  timeout,
		Reporter: notify.NewLogReporter(logger),
		Logger:   logger,
		Context:  ctx,
	})

	out := orch.Search(ctx)
	if !out.IsSuccess() {
		p.failure(out.Reason)
		return 1
	}
	p.results(out, state)
	if opts.facets {
		p.facets(out.Facets, state)
	}
	return 0
}

// buildState layers the flags over the configured defaults
func buildState(cfg *config.Config, opts options) (query.State, error) {
	state := cfg.InitialState().SetQuery(opts.query)

	if opts.sort != "" {
		key, err := query.ParseSortKey(opts.sort)
		if err != nil {
			return state, err
		}
		state = state.SetSort(key)
	}
	if opts.order != "" {
		order, err := query.ParseSortOrder(opts.order)
		if err != nil {
			return state, err
		}
		state = state.SetOrder(order)
	}
	if opts.limit > 0 {
		state = state.SetLimit(opts.limit)
	}
	for _, c := range opts.categories {
		if !state.HasCategory(c) {
			state = state.ToggleCategory(c)
		}
	}
	for _, t := range opts.tags {
		if !state.HasTag(t) {
			state = state.ToggleTag(t)
		}
	}
	// Filters reset the page, so it goes last
	if opts.page < 1 {
		return state, fmt.Errorf("page must be at least 1, got %d", opts.page)
	}
	return state.SetPage(opts.page), nil
}
