package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/fx"
)

func TestRunStopsOnContextCancel(t *testing.T) {
	stopped := false
	app := fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{OnStop: func(context.Context) error {
				stopped = true
				return nil
			}})
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, app); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !stopped {
		t.Fatal("expected stop hooks to run")
	}
}

func TestRunReportsStartFailure(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{OnStart: func(context.Context) error {
				return errors.New("boom")
			}})
		}),
	)

	err := run(context.Background(), app)
	if err == nil || !strings.Contains(err.Error(), "start application") {
		t.Fatalf("expected start error, got %v", err)
	}
}
