package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/eleven-am/classroom-relay/internal/gateway"
	"github.com/eleven-am/classroom-relay/internal/health"
	"github.com/eleven-am/classroom-relay/internal/history"
	"github.com/eleven-am/classroom-relay/internal/hub"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

func ProvideWSServer(h *hub.Hub, logger *slog.Logger) *gateway.WSServer {
	return gateway.NewWSServer(h, logger)
}

func ProvideHistoryHandler(historyLog *history.Log, logger *slog.Logger) *history.Handler {
	return history.NewHandler(historyLog, logger)
}

func ProvideHealthHandler(registry *hub.Registry, historyLog *history.Log) *health.Handler {
	return health.NewHandler(registry, historyLog, Version)
}

type HandlerParams struct {
	fx.In

	Echo    *echo.Echo
	Config  *Config
	WS      *gateway.WSServer
	History *history.Handler
	Health  *health.Handler
}

func RegisterRoutes(p HandlerParams) {
	p.Echo.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"ok":          true,
			"realtime":    "assemblyai",
			"sample_rate": p.Config.SampleRate,
		})
	})

	p.WS.RegisterRoutes(p.Echo)
	p.Health.RegisterRoutes(p.Echo)

	v1 := p.Echo.Group("/v1")
	p.History.RegisterRoutes(v1)

	p.Echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

var HandlersModule = fx.Options(
	fx.Provide(ProvideWSServer),
	fx.Provide(ProvideHistoryHandler),
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterRoutes),
)
