package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quotevault/internal/config"
	"quotevault/internal/eventbus"
	"quotevault/internal/fetch"
	"quotevault/internal/logging"
	"quotevault/internal/metrics"
	"quotevault/internal/notify"
	"quotevault/internal/share"
	"quotevault/internal/ui"
)

func main() {
	var (
		configPath string
		endpoint   string
		initial    string
		check      bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/quotevault/config.toml)")
	flag.StringVar(&endpoint, "endpoint", "", "Search service base URL, overrides the config file")
	flag.StringVar(&initial, "q", "", "Initial search query")
	flag.BoolVar(&check, "check", false, "Check that the search service is up and exit")
	flag.Parse()

	os.Exit(run(configPath, endpoint, initial, check))
}

func run(configPath, endpoint, initial string, check bool) int {
	configSvc := config.NewConfigServiceWithBus(configPath, nil)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Invalid endpoint: %v\n", err)
			return 1
		}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	// Create event bus
	bus := eventbus.New(logger)
	defer bus.Close()

	// Write the defaults out on first run so there is a file to edit
	configSvc = config.NewConfigServiceWithBus(configSvc.Path(), bus)
	if !configSvc.Exists() {
		if err := configSvc.Save(config.DefaultConfig()); err != nil {
			logger.Warn("could not write default config", zap.String("path", configSvc.Path()), zap.Error(err))
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	httpFetcher := fetch.NewHTTPFetcher(cfg.Endpoint, &http.Client{}, logger)

	if check {
		return runCheck(ctx, httpFetcher)
	}

	recorder := metrics.NewRecorder()
	recorder.Attach(bus)
	defer recorder.Detach()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := recorder.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	var fetcher fetch.Fetcher = httpFetcher
	ttl, _ := cfg.Search.CacheTTLDuration()
	if ttl > 0 {
		fetcher = fetch.NewCachingFetcher(httpFetcher, ttl)
	}
	timeout, _ := cfg.Search.TimeoutDuration()

	reporter := notify.Multi{notify.NewBusReporter(bus), notify.NewLogReporter(logger)}

	state := cfg.InitialState()
	if initial != "" {
		state = state.SetQuery(initial)
	}
	orch := fetch.NewOrchestrator(fetcher, state, fetch.Options{
		Timeout:  timeout,
		Bus:      bus,
		Reporter: reporter,
		Logger:   logger,
		Context:  ctx,
	})
	sharer := share.NewService(share.SystemClipboard{}, nil, reporter, bus, logger)

	model := ui.NewModel(orch, sharer, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Forward notifications to the UI without blocking the bus
	eventChan := make(chan eventbus.DomainEvent, 100)
	unsubscribe := bus.Subscribe(eventbus.EventNotification, func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping notification")
		}
	})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			}
		}
	}()

	defer unsubscribe()

	logger.Info("starting UI", zap.String("endpoint", cfg.Endpoint))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("error running program", zap.Error(err))
		fmt.Printf("Error running program: %v\n", err)
		return 1
	}
	logger.Info("UI exited normally")
	return 0
}

func runCheck(ctx context.Context, f *fetch.HTTPFetcher) int {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	msg, err := f.Health(ctx)
	if err != nil {
		fmt.Printf("%s: %v\n", f.Endpoint(), err)
		return 1
	}
	fmt.Printf("%s: ok (%s)\n", f.Endpoint(), msg)
	return 0
}
