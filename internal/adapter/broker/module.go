package broker

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/worker"
)

// Module registers configured broker sinks as order event handlers.
var Module = fx.Provide(
	fx.Annotate(newSinks, fx.ResultTags(`group:"order_handlers,flatten"`)),
)

type sinkParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

type closer interface {
	Close() error
}

func newSinks(p sinkParams) ([]worker.Handler, error) {
	var (
		handlers []worker.Handler
		closers  []closer
	)

	if p.Config.AMQPURL != "" {
		sink, err := DialAMQP(p.Config.AMQPURL, p.Config.AMQPExchange)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, sink)
		closers = append(closers, sink)
		p.Logger.Info("amqp event sink enabled", slog.String("exchange", p.Config.AMQPExchange))
	}

	if len(p.Config.KafkaBrokers) > 0 {
		sink := NewKafkaSink(p.Config.KafkaBrokers, p.Config.KafkaTopic)
		handlers = append(handlers, sink)
		closers = append(closers, sink)
		p.Logger.Info("kafka event sink enabled", slog.String("topic", p.Config.KafkaTopic))
	}

	if len(closers) > 0 {
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				for _, c := range closers {
					if err := c.Close(); err != nil {
						p.Logger.Error("close event sink failed", slog.String("error", err.Error()))
					}
				}
				return nil
			},
		})
	}

	return handlers, nil
}
