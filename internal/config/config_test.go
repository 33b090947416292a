package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_OverridesAndDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `state_path: /tmp/cal.json
orders:
  timeout: 3s
  username: printer
calendar:
  drag_threshold: 2.5
  save_debounce: 250ms
  first_weekday: Sunday
ui:
  show_counts: false
tracing:
  enabled: true
  exporter: stdout
  sample_rate: 0.25
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cal.json", cfg.StatePath)
	assert.Equal(t, 3*time.Second, cfg.Orders.Timeout)
	assert.Equal(t, "printer", cfg.Orders.Username)
	assert.Equal(t, "https://www.ybsnow.com", cfg.Orders.BaseURL)
	assert.Equal(t, 2.5, cfg.Calendar.DragThreshold)
	assert.Equal(t, 250*time.Millisecond, cfg.Calendar.SaveDebounce)
	assert.Equal(t, 100, cfg.Calendar.HistoryLimit)
	assert.False(t, cfg.UI.ShowCounts)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "stdout", cfg.Tracing.Exporter)
	assert.Equal(t, 0.25, cfg.Tracing.SampleRate)
	assert.Equal(t, "~/.printcal/traces.jsonl", cfg.Tracing.FilePath)

	wd, err := ParseWeekday(cfg.Calendar.FirstWeekday)
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, wd)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `calendar:
  history_limit: 0
  drag_threshold: -1
orders:
  base_url: "not a url"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar.history_limit")
	assert.Contains(t, err.Error(), "calendar.drag_threshold")
	assert.Contains(t, err.Error(), "orders.base_url")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero debounce", func(c *Config) { c.Calendar.SaveDebounce = 0 }, "calendar.save_debounce"},
		{"zero poll", func(c *Config) { c.Calendar.PollInterval = 0 }, "calendar.poll_interval"},
		{"zero timeout", func(c *Config) { c.Orders.Timeout = 0 }, "orders.timeout"},
		{"bad weekday", func(c *Config) { c.Calendar.FirstWeekday = "friday" }, "calendar.first_weekday"},
		{"bad markdown style", func(c *Config) { c.UI.MarkdownStyle = "neon" }, "ui.markdown_style"},
		{"zero threshold is fine", func(c *Config) { c.Calendar.DragThreshold = 0 }, ""},
		{"sample rate above one", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "tracing.sample_rate"},
		{"otlp exporter", func(c *Config) { c.Tracing.Exporter = "otlp" }, "tracing.exporter"},
		{"enabled file without path", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.FilePath = ""
		}, "tracing.file_path"},
		{"disabled file without path is fine", func(c *Config) { c.Tracing.FilePath = "" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".printcal", "state.json"), ExpandPath("~/.printcal/state.json"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}
