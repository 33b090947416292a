// Package config provides configuration types and defaults for printcal.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/zjrosen/printcal/internal/log"
)

// Config holds all configuration options for printcal.
type Config struct {
	StatePath string         `mapstructure:"state_path"`
	Orders    OrdersConfig   `mapstructure:"orders"`
	Calendar  CalendarConfig `mapstructure:"calendar"`
	UI        UIConfig       `mapstructure:"ui"`
	Tracing   TracingConfig  `mapstructure:"tracing"`
}

// OrdersConfig configures the order portal client.
type OrdersConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Username      string        `mapstructure:"username"`       // remembered after a successful login
	CredentialTTL time.Duration `mapstructure:"credential_ttl"` // silent re-login window
	SnapshotPath  string        `mapstructure:"snapshot_path"`  // sqlite file with the last fetched list
}

// CalendarConfig tunes the calendar interactions.
type CalendarConfig struct {
	DragThreshold float64       `mapstructure:"drag_threshold"`
	HistoryLimit  int           `mapstructure:"history_limit"`
	SaveDebounce  time.Duration `mapstructure:"save_debounce"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	FirstWeekday  string        `mapstructure:"first_weekday"` // "monday" (default) or "sunday"
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowCounts    bool   `mapstructure:"show_counts"`
	WatchConfig   bool   `mapstructure:"watch_config"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// TracingConfig controls span export for the order portal calls.
type TracingConfig struct {
	// Enabled turns tracing on. Off by default.
	Enabled bool `mapstructure:"enabled"`

	// Exporter is "file", "stdout" or "none".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSONL output of the "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// SampleRate is the fraction of traces kept, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		StatePath: "~/.printcal/state.json",
		Orders: OrdersConfig{
			BaseURL:       "https://www.ybsnow.com",
			Timeout:       10 * time.Second,
			CredentialTTL: 30 * time.Minute,
			SnapshotPath:  "~/.printcal/orders.db",
		},
		Calendar: CalendarConfig{
			DragThreshold: 1,
			HistoryLimit:  100,
			SaveDebounce:  time.Second,
			PollInterval:  100 * time.Millisecond,
			FirstWeekday:  "monday",
		},
		UI: UIConfig{
			ShowCounts:    true,
			WatchConfig:   true,
			MarkdownStyle: "dark",
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Exporter:   "file",
			FilePath:   "~/.printcal/traces.jsonl",
			SampleRate: 1.0,
		},
	}
}

// SetDefaults registers every default with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("state_path", d.StatePath)
	v.SetDefault("orders.base_url", d.Orders.BaseURL)
	v.SetDefault("orders.timeout", d.Orders.Timeout)
	v.SetDefault("orders.username", d.Orders.Username)
	v.SetDefault("orders.credential_ttl", d.Orders.CredentialTTL)
	v.SetDefault("orders.snapshot_path", d.Orders.SnapshotPath)
	v.SetDefault("calendar.drag_threshold", d.Calendar.DragThreshold)
	v.SetDefault("calendar.history_limit", d.Calendar.HistoryLimit)
	v.SetDefault("calendar.save_debounce", d.Calendar.SaveDebounce)
	v.SetDefault("calendar.poll_interval", d.Calendar.PollInterval)
	v.SetDefault("calendar.first_weekday", d.Calendar.FirstWeekday)
	v.SetDefault("ui.show_counts", d.UI.ShowCounts)
	v.SetDefault("ui.watch_config", d.UI.WatchConfig)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the app cannot run with.
func Validate(c Config) error {
	var errs []error
	if c.Calendar.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("calendar.history_limit must be positive, got %d", c.Calendar.HistoryLimit))
	}
	if c.Calendar.DragThreshold < 0 {
		errs = append(errs, fmt.Errorf("calendar.drag_threshold must not be negative, got %v", c.Calendar.DragThreshold))
	}
	if c.Calendar.SaveDebounce <= 0 {
		errs = append(errs, fmt.Errorf("calendar.save_debounce must be positive, got %v", c.Calendar.SaveDebounce))
	}
	if c.Calendar.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("calendar.poll_interval must be positive, got %v", c.Calendar.PollInterval))
	}
	if _, err := ParseWeekday(c.Calendar.FirstWeekday); err != nil {
		errs = append(errs, err)
	}
	if c.Orders.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("orders.timeout must be positive, got %v", c.Orders.Timeout))
	}
	if u, err := url.Parse(c.Orders.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("orders.base_url must be an absolute URL, got %q", c.Orders.BaseURL))
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle))
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\" or \"stdout\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == "file" && t.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}
	return nil
}

// ParseWeekday accepts "monday" or "sunday", case-insensitively. Blank means
// Monday.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monday":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("calendar.first_weekday must be \"monday\" or \"sunday\", got %q", s)
	}
}

// ExpandPath resolves a leading ~ to the home directory.
func ExpandPath(p string) string {
	expanded, err := homedir.Expand(p)
	if err != nil {
		log.Warn(log.CatConfig, "cannot expand path", "path", p, "error", err)
		return p
	}
	return expanded
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# printcal configuration

# Where the calendar notes and assignments are kept
state_path: ~/.printcal/state.json

# YBS order portal
orders:
  base_url: https://www.ybsnow.com
  timeout: 10s
  # username: you@example.com   # remembered after a successful login
  credential_ttl: 30m           # how long a login is reused when the session expires
  snapshot_path: ~/.printcal/orders.db

# Calendar behaviour
calendar:
  drag_threshold: 1      # cells the pointer must travel before a press becomes a drag
  history_limit: 100     # undo/redo depth
  save_debounce: 1s      # wait after the last edit before writing the state file
  poll_interval: 100ms   # how often background results are picked up
  first_weekday: monday  # "monday" or "sunday"

# UI settings
ui:
  show_counts: true      # show "15 (3)" order counts in day headers
  watch_config: true     # apply ui changes to this file without restarting
  # markdown_style: dark # notes preview style: "dark" (default) or "light"

# Spans for portal login and order fetches
tracing:
  enabled: false
  exporter: file         # "file", "stdout" or "none"
  file_path: ~/.printcal/traces.jsonl
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
