package app

import (
	"github.com/google/wire"

	"github.com/starterkit/server/internal/shared/config"
	"github.com/starterkit/server/internal/shared/logger"
	"github.com/starterkit/server/internal/utils/metrics"
	"github.com/starterkit/server/internal/utils/middleware"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideErrorResponder,
)

// ProvideLogger creates the two-channel logger. The cleanup flushes and
// closes the file sinks.
func ProvideLogger(cfg *config.Config) (*logger.Logger, func(), error) {
	log, err := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Dir:         cfg.Log.Dir,
		Console:     cfg.Log.Console,
		DatePattern: cfg.Log.DatePattern,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		Compress:    cfg.Log.Compress,
	})
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Close() }, nil
}

// ProvideMetrics creates a metrics instance, or nil when metrics are disabled.
func ProvideMetrics(cfg *config.Config) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(cfg.Metrics.Namespace)
}

// ProvideErrorResponder creates the responder shared by the error handler
// and the recovery middleware.
func ProvideErrorResponder(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) *middleware.ErrorResponder {
	return middleware.NewErrorResponder(cfg, log, m)
}

// ===== HTTP Providers =====

// HTTPSet provides the application and its server.
var HTTPSet = wire.NewSet(
	DefaultModules,
	New,
	NewServer,
)

// AppSet combines all provider sets.
var AppSet = wire.NewSet(
	InfraSet,
	HTTPSet,
)
