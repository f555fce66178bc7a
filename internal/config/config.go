package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"quotevault/internal/eventbus"
	"quotevault/internal/query"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	Endpoint   string          `toml:"endpoint"`
	Search     SearchSettings  `toml:"search"`
	Log        LogSettings     `toml:"log"`
	Metrics    MetricsSettings `toml:"metrics"`
	UISettings UISettings      `toml:"ui"`
}

// SearchSettings seeds the initial search state and the fetch pipeline
type SearchSettings struct {
	PageSize int    `toml:"page_size"`
	Sort     string `toml:"sort"`
	Order    string `toml:"order"`
	Timeout  string `toml:"timeout"`   // duration, "0" disables
	CacheTTL string `toml:"cache_ttl"` // duration, "0" disables
}

// LogSettings controls the log file
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsSettings controls the prometheus endpoint
type MetricsSettings struct {
	Addr string `toml:"addr"` // empty disables
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowTags   bool `toml:"show_tags"`
	ShowCounts bool `toml:"show_counts"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
	Exists() bool
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/quotevault/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "quotevault", "config.toml")
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path means DefaultPath().
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path, bus: bus}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Exists reports whether the config file is present
func (cs *configService) Exists() bool {
	_, err := os.Stat(cs.filePath)
	return err == nil
}

// Load loads the configuration from file, falling back to defaults when it is missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:     cs.filePath,
			Endpoint: cfg.Endpoint,
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Endpoint: "http://localhost:8080",
		Search: SearchSettings{
			PageSize: query.DefaultLimit,
			Sort:     string(query.SortPopularity),
			Order:    string(query.OrderDesc),
			Timeout:  "10s",
			CacheTTL: "30s",
		},
		Log: LogSettings{
			File:  "quotevault.log",
			Level: "info",
		},
		UISettings: UISettings{
			ShowTags:   true,
			ShowCounts: true,
		},
	}
}

// Validate checks the values that cannot be defaulted silently
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute URL", c.Endpoint)
	}
	if _, err := query.ParseSortKey(c.Search.Sort); err != nil {
		return err
	}
	if _, err := query.ParseSortOrder(c.Search.Order); err != nil {
		return err
	}
	if _, err := c.Search.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Search.CacheTTLDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout. Empty or "0" means no timeout.
func (s SearchSettings) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", s.Timeout)
}

// CacheTTLDuration parses CacheTTL. Empty or "0" disables caching.
func (s SearchSettings) CacheTTLDuration() (time.Duration, error) {
	return parseDuration("cache_ttl", s.CacheTTL)
}

func parseDuration(name, value string) (time.Duration, error) {
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", name)
	}
	return d, nil
}

// InitialState builds the search state the application starts from
func (c *Config) InitialState() query.State {
	s := query.NewState()
	if key, err := query.ParseSortKey(c.Search.Sort); err == nil {
		s = s.SetSort(key)
	}
	if order, err := query.ParseSortOrder(c.Search.Order); err == nil {
		s = s.SetOrder(order)
	}
	return s.SetLimit(c.Search.PageSize)
}
