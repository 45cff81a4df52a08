package handlers

import (
	"context"

	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, in usecase.PlaceOrderInput) (*usecase.PlaceResult, error)
	VerifyOrder(ctx context.Context, orderID string, success bool) (bool, error)
	UserOrders(ctx context.Context, userID int64) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error)
	CancelOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error)
	Order(ctx context.Context, userID int64, orderID string) (*model.Order, error)
}

// CartFacade provides per-user cart operations.
type CartFacade interface {
	AddToCart(ctx context.Context, userID int64, itemID string) error
	RemoveFromCart(ctx context.Context, userID int64, itemID string) error
	Cart(ctx context.Context, userID int64) (model.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
	MergeCart(ctx context.Context, userID int64, local model.Cart) (model.Cart, error)
	QuoteCart(ctx context.Context, userID int64) (*model.Quote, error)
}

// CatalogFacade serves the food catalog.
type CatalogFacade interface {
	Foods(ctx context.Context) ([]model.Food, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	CartFacade
	CatalogFacade
}
