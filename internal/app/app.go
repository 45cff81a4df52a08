package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/server/http/handlers"
	"github.com/polkiloo/eatsprint/internal/server/ws"
	"github.com/polkiloo/eatsprint/internal/usecase"
	"github.com/polkiloo/eatsprint/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		func(f *StoreFacade) handlers.StoreFacade { return f },
		func(q *usecase.OrderQuery) ws.OrderReader { return q },
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.Dispatcher
	Sweeper    *worker.OrphanSweeper
	Live       *ws.Hub
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting eatsprint",
				slog.String("addr", p.Server.Addr),
				slog.Bool("online_payments", p.Config.GatewayEnabled()),
			)
			p.Dispatcher.Start(ctx)
			p.Sweeper.Start(ctx)
			p.Live.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			var errs []error
			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs = append(errs, err)
			}
			p.Live.Stop()
			p.Sweeper.Stop()
			if err := p.Dispatcher.Stop(shutdownCtx); err != nil {
				p.Logger.Warn("order events left undelivered", slog.String("error", err.Error()))
				errs = append(errs, err)
			}
			p.Logger.Info("eatsprint stopped")
			return errors.Join(errs...)
		},
	})
}
