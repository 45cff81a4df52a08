package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/app"
	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/domain/repository"
	"github.com/polkiloo/eatsprint/internal/storage/postgres"
	"github.com/polkiloo/eatsprint/internal/test"
	"github.com/polkiloo/eatsprint/internal/worker"
)

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		FrontendURL:     "http://localhost:5173",
		RedisAddr:       "localhost:0",
		AuthStrategy:    "jwt",
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		StripeCurrency:  "inr",
		NotifyWorkers:   1,
		NotifyQueueSize: 1,
		OrphanOrderTTL:  time.Hour,
		SweepInterval:   time.Hour,
		ShutdownTimeout: time.Millisecond,
	}
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var (
		facade     *app.StoreFacade
		dispatcher *worker.Dispatcher
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(test.NewUserRepositoryStub(), fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(test.NewOrderRepositoryStub(), fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(&test.FoodRepositoryStub{}, fx.As(new(repository.FoodRepository)))),
			fx.Replace(fx.Annotate(test.NewCartRepositoryStub(), fx.As(new(repository.CartRepository)))),
		),
		fx.Populate(&facade, &dispatcher),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected store facade instance")
	}

	// Without SMTP or brokers only the websocket hub consumes events.
	handlers := dispatcher.Handlers()
	if len(handlers) != 1 || handlers[0] != "websocket" {
		t.Fatalf("unexpected handlers: %v", handlers)
	}
}
