package ws

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/worker"
)

// Module provides the live order hub and registers it as an event handler.
var Module = fx.Provide(
	newHub,
	fx.Annotate(
		func(h *Hub) worker.Handler { return h },
		fx.ResultTags(worker.HandlerGroup),
	),
)

type hubParams struct {
	fx.In

	Orders OrderReader
	Config *config.Config
	Logger *slog.Logger
}

func newHub(p hubParams) *Hub {
	return NewHub(p.Orders, Options{AllowedOrigin: p.Config.FrontendURL, Logger: p.Logger})
}
