package test

import (
	"context"
	"time"

	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn        func(context.Context, int64, usecase.PlaceOrderInput) (*usecase.PlaceResult, error)
	VerifyFn       func(context.Context, string, bool) (bool, error)
	UserOrdersFn   func(context.Context, int64) ([]model.Order, error)
	AllOrdersFn    func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, string) (*model.Order, error)
	CancelFn       func(context.Context, int64, string) (*model.Order, error)
	OrderFn        func(context.Context, int64, string) (*model.Order, error)
}

// SampleOrder returns a COD order owned by userID.
func SampleOrder(id string, userID int64) model.Order {
	items := []model.LineItem{{Name: "Pizza", UnitPrice: 50000, Quantity: 2}}
	return model.Order{
		ID:            id,
		UserID:        userID,
		Items:         items,
		Amount:        model.TotalOf(items).Major(),
		PaymentMethod: model.PaymentMethodCOD,
		Status:        model.OrderStatusCODPending,
		Date:          time.Unix(1700000000, 0).UTC(),
	}
}

// PlaceOrder delegates to override or places COD order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, userID int64, in usecase.PlaceOrderInput) (*usecase.PlaceResult, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID, in)
	}
	order := SampleOrder("order-1", userID)
	return &usecase.PlaceResult{Order: &order}, nil
}

// VerifyOrder returns success flag by default.
func (s OrderFacadeStub) VerifyOrder(ctx context.Context, orderID string, success bool) (bool, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, orderID, success)
	}
	return success, nil
}

// UserOrders returns predefined orders for given user.
func (s OrderFacadeStub) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.UserOrdersFn != nil {
		return s.UserOrdersFn(ctx, userID)
	}
	return []model.Order{SampleOrder("order-1", userID)}, nil
}

// AllOrders returns predefined orders.
func (s OrderFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{SampleOrder("order-1", 1)}, nil
}

// UpdateOrderStatus returns order with applied status.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	order := SampleOrder(orderID, 1)
	order.Status = model.OrderStatus(status)
	return &order, nil
}

// CancelOrder returns cancelled order.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, orderID)
	}
	order := SampleOrder(orderID, userID)
	order.Status = model.OrderStatusCancelled
	return &order, nil
}

// Order returns order owned by user.
func (s OrderFacadeStub) Order(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	order := SampleOrder(orderID, userID)
	return &order, nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	AddFn    func(context.Context, int64, string) error
	RemoveFn func(context.Context, int64, string) error
	CartFn   func(context.Context, int64) (model.Cart, error)
	ClearFn  func(context.Context, int64) error
	MergeFn  func(context.Context, int64, model.Cart) (model.Cart, error)
	QuoteFn  func(context.Context, int64) (*model.Quote, error)
}

// AddToCart executes configured handler.
func (s CartFacadeStub) AddToCart(ctx context.Context, userID int64, itemID string) error {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, itemID)
	}
	return nil
}

// RemoveFromCart executes configured handler.
func (s CartFacadeStub) RemoveFromCart(ctx context.Context, userID int64, itemID string) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, itemID)
	}
	return nil
}

// Cart returns configured cart.
func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return model.Cart{"1": 2}, nil
}

// ClearCart executes configured handler.
func (s CartFacadeStub) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return nil
}

// MergeCart returns the local cart by default.
func (s CartFacadeStub) MergeCart(ctx context.Context, userID int64, local model.Cart) (model.Cart, error) {
	if s.MergeFn != nil {
		return s.MergeFn(ctx, userID, local)
	}
	return local.Compact(), nil
}

// QuoteCart returns configured quote.
func (s CartFacadeStub) QuoteCart(ctx context.Context, userID int64) (*model.Quote, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, userID)
	}
	items := []model.LineItem{{Name: "Pizza", UnitPrice: 50000, Quantity: 2}}
	return &model.Quote{Items: items, Total: model.TotalOf(items)}, nil
}

// CatalogFacadeStub serves catalog listing.
type CatalogFacadeStub struct {
	FoodsFn func(context.Context) ([]model.Food, error)
}

// Foods returns configured foods.
func (s CatalogFacadeStub) Foods(ctx context.Context) ([]model.Food, error) {
	if s.FoodsFn != nil {
		return s.FoodsFn(ctx)
	}
	return []model.Food{{ID: 1, Name: "Pizza", Price: model.MinorAmount(50000).Major(), Category: "Pizza"}}, nil
}
