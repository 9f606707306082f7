package bootstrap

import (
	"log/slog"
	"os"

	"github.com/eleven-am/classroom-relay/internal/history"
	"github.com/eleven-am/classroom-relay/internal/hub"
	"github.com/eleven-am/classroom-relay/internal/metrics"
	"github.com/eleven-am/classroom-relay/internal/upstream"
	"go.uber.org/fx"
)

func ProvideLogger(cfg *Config) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideMetrics() *metrics.Metrics {
	return metrics.NewDefault()
}

func ProvideHistory(cfg *Config) *history.Log {
	return history.NewLog(cfg.HistoryCapacity)
}

func ProvideUpstreamDialer(cfg *Config, logger *slog.Logger) upstream.Dialer {
	return upstream.NewClient(upstream.Config{
		APIKey:      cfg.AssemblyAIKey,
		APIBaseURL:  cfg.AssemblyAIAPIURL,
		RealtimeURL: cfg.AssemblyAIWSURL,
		SampleRate:  cfg.SampleRate,
		TokenTTL:    cfg.TokenTTL,
	}, logger)
}

func ProvideRegistry(logger *slog.Logger, m *metrics.Metrics) *hub.Registry {
	return hub.NewRegistry(logger, m)
}

func ProvideHub(registry *hub.Registry, historyLog *history.Log, dialer upstream.Dialer, logger *slog.Logger, m *metrics.Metrics) *hub.Hub {
	return hub.New(hub.HubConfig{
		Registry: registry,
		History:  historyLog,
		Dialer:   dialer,
		Log:      logger,
		Metrics:  m,
	})
}

var RelayModule = fx.Options(
	fx.Provide(ProvideLogger),
	fx.Provide(ProvideMetrics),
	fx.Provide(ProvideHistory),
	fx.Provide(ProvideUpstreamDialer),
	fx.Provide(ProvideRegistry),
	fx.Provide(ProvideHub),
)
