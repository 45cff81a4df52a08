package redis

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/domain/repository"
)

// Module wires the Redis client and the cart store.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(
		NewCartStore,
		func(s *CartStore) repository.CartRepository { return s },
		fx.Annotate(
			func(s *CartStore) repository.HealthChecker { return s },
			fx.ResultTags(`group:"health_checkers"`),
		),
	),
	fx.Invoke(registerLifecycle),
)

func newClient(cfg *config.Config) goredis.UniversalClient {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

type lifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    goredis.UniversalClient
	Logger    *slog.Logger
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("ping redis: %w", err)
			}
			p.Logger.Info("cart store connected")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return p.Client.Close()
		},
	})
}
