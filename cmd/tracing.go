package cmd

import (
	"context"
	"time"

	"github.com/zjrosen/printcal/internal/config"
	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/tracing"
)

const tracingShutdownTimeout = 5 * time.Second

// newTracing builds the span provider from the tracing section. A provider
// that cannot start is logged and replaced by a disabled one. The returned
// func flushes and closes it.
func newTracing(c config.TracingConfig) (*tracing.Provider, func()) {
	tc := tracing.DefaultConfig()
	tc.Enabled = c.Enabled
	tc.Exporter = c.Exporter
	tc.SampleRate = c.SampleRate
	if c.FilePath != "" {
		tc.FilePath = config.ExpandPath(c.FilePath)
	}

	provider, err := tracing.NewProvider(tc)
	if err != nil {
		log.ErrorErr(log.CatConfig, "tracing unavailable", err, "exporter", c.Exporter)
		provider, _ = tracing.NewProvider(tracing.DefaultConfig())
	} else if provider.Enabled() {
		log.Info(log.CatConfig, "tracing enabled", "exporter", c.Exporter, "path", tc.FilePath)
	}

	return provider, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatConfig, "flushing traces failed", err)
		}
	}
}
