package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/adapter/broker"
	"github.com/polkiloo/eatsprint/internal/adapter/mailer"
	"github.com/polkiloo/eatsprint/internal/adapter/stripe"
	"github.com/polkiloo/eatsprint/internal/app"
	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/logger"
	"github.com/polkiloo/eatsprint/internal/metrics"
	"github.com/polkiloo/eatsprint/internal/notification"
	"github.com/polkiloo/eatsprint/internal/pkg/auth"
	"github.com/polkiloo/eatsprint/internal/server/http/router"
	"github.com/polkiloo/eatsprint/internal/server/ws"
	"github.com/polkiloo/eatsprint/internal/storage/postgres"
	"github.com/polkiloo/eatsprint/internal/storage/redis"
	"github.com/polkiloo/eatsprint/internal/usecase"
	"github.com/polkiloo/eatsprint/internal/worker"
)

// Module assembles the service graph. Extra options are applied last so
// tests can swap infrastructure with fx.Replace.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		stripe.Module,
		mailer.Module,
		usecase.Module,
		metrics.Module,
		worker.Module,
		notification.Module,
		broker.Module,
		ws.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
