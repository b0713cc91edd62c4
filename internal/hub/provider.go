package hub

import (
	"log/slog"

	"go.uber.org/fx"
)

func ProvideHub(logger *slog.Logger) *Hub {
	return NewHub(logger)
}

func ProvideHandler(hub *Hub, logger *slog.Logger) *Handler {
	return NewHandler(hub, logger)
}

var Module = fx.Options(
	fx.Provide(
		ProvideHub,
		ProvideHandler,
	),
)
