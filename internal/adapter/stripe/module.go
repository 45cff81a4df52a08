package stripe

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/usecase"
)

// Module exposes the checkout gateway to fx graph.
var Module = fx.Provide(
	newGateway,
	func(g *Gateway) usecase.PaymentGateway { return g },
)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) *Gateway {
	if !p.Config.GatewayEnabled() {
		p.Logger.Warn("STRIPE_SECRET_KEY is not set, online payments are disabled")
	}
	return NewGateway(Options{
		SecretKey:  p.Config.StripeSecretKey,
		Currency:   p.Config.StripeCurrency,
		SessionTTL: p.Config.OrphanOrderTTL,
		Logger:     p.Logger,
	})
}
