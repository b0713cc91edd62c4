package bootstrap

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/pwspen/vlmcar/internal/agent"
	"github.com/pwspen/vlmcar/internal/health"
	"github.com/pwspen/vlmcar/internal/hub"
	"github.com/pwspen/vlmcar/internal/oracle"
)

const version = "1.0.0"

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

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideHealthHandler(loop *agent.Loop, h *hub.Hub, orc *oracle.Client) *health.Handler {
	return health.NewHandler(loop, h, orc, version)
}

type HandlerParams struct {
	fx.In

	HubHandler    *hub.Handler
	HealthHandler *health.Handler
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1")

	params.HubHandler.RegisterRoutes(api)
	params.HealthHandler.RegisterRoutes(api)
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideHealthHandler,
	),
	fx.Invoke(RegisterRoutes),
)
