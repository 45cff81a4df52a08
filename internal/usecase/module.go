package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCartUseCase,
	NewCatalogUseCase,
	NewOrderQuery,
	newOrderUseCase,
)

type orderParams struct {
	fx.In

	Orders    repository.OrderRepository
	Gateway   PaymentGateway
	Publisher EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Gateway, p.Publisher, OrderOptions{
		FrontendURL: p.Config.FrontendURL,
		Logger:      p.Logger,
	})
}
