package app

import (
	"context"

	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/usecase"
)

// StoreFacade exposes use cases to transport layers.
type StoreFacade struct {
	auth    *usecase.AuthUseCase
	orders  *usecase.OrderUseCase
	carts   *usecase.CartUseCase
	catalog *usecase.CatalogUseCase
}

func NewStoreFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, carts *usecase.CartUseCase, catalog *usecase.CatalogUseCase) *StoreFacade {
	return &StoreFacade{auth: auth, orders: orders, carts: carts, catalog: catalog}
}

func (f *StoreFacade) Register(ctx context.Context, name, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, name, email, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, userID int64, in usecase.PlaceOrderInput) (*usecase.PlaceResult, error) {
	return f.orders.Place(ctx, userID, in)
}

func (f *StoreFacade) VerifyOrder(ctx context.Context, orderID string, success bool) (bool, error) {
	return f.orders.Verify(ctx, orderID, success)
}

func (f *StoreFacade) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StoreFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	return f.orders.Cancel(ctx, userID, orderID)
}

func (f *StoreFacade) Order(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *StoreFacade) AddToCart(ctx context.Context, userID int64, itemID string) error {
	return f.carts.Add(ctx, userID, itemID)
}

func (f *StoreFacade) RemoveFromCart(ctx context.Context, userID int64, itemID string) error {
	return f.carts.Remove(ctx, userID, itemID)
}

func (f *StoreFacade) Cart(ctx context.Context, userID int64) (model.Cart, error) {
	return f.carts.Get(ctx, userID)
}

func (f *StoreFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.carts.Clear(ctx, userID)
}

func (f *StoreFacade) MergeCart(ctx context.Context, userID int64, local model.Cart) (model.Cart, error) {
	return f.carts.Merge(ctx, userID, local)
}

func (f *StoreFacade) QuoteCart(ctx context.Context, userID int64) (*model.Quote, error) {
	return f.carts.Quote(ctx, userID)
}

func (f *StoreFacade) Foods(ctx context.Context) ([]model.Food, error) {
	return f.catalog.List(ctx)
}
