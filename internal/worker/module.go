package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/domain/repository"
	"github.com/polkiloo/eatsprint/internal/usecase"
)

// HandlerGroup is the fx value group collecting order event handlers.
const HandlerGroup = `group:"order_handlers"`

// Module provides background workers.
var Module = fx.Provide(
	newDispatcher,
	func(d *Dispatcher) usecase.EventPublisher { return d },
	newOrphanSweeper,
)

type dispatcherParams struct {
	fx.In

	Handlers []Handler `group:"order_handlers"`
	Observer Observer  `optional:"true"`
	Config   *config.Config
	Logger   *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	d := NewDispatcher(p.Handlers, DispatcherOptions{
		Workers:   p.Config.NotifyWorkers,
		QueueSize: p.Config.NotifyQueueSize,
		Logger:    p.Logger,
		Observer:  p.Observer,
	})
	p.Logger.Info("order event handlers registered", slog.Any("handlers", d.Handlers()))
	return d
}

type sweeperParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
	Logger *slog.Logger
}

func newOrphanSweeper(p sweeperParams) *OrphanSweeper {
	return NewOrphanSweeper(p.Orders, p.Config.OrphanOrderTTL, p.Config.SweepInterval, p.Logger)
}
