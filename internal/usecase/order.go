package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/eatsprint/internal/domain/errors"
	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/domain/repository"
)

// cancelAttempts bounds compare-and-set retries when status moves concurrently.
const cancelAttempts = 3

// PaymentGateway creates hosted checkout sessions for online orders.
type PaymentGateway interface {
	Enabled() bool
	CreateCheckoutSession(ctx context.Context, items []model.LineItem, successURL, cancelURL string) (string, error)
}

// EventPublisher receives committed order events. Publish must not block.
type EventPublisher interface {
	Publish(ctx context.Context, event model.OrderEvent)
}

// OrderOptions tunes OrderUseCase behaviour.
type OrderOptions struct {
	FrontendURL string
	Now         func() time.Time
	NewID       func() string
	Logger      *slog.Logger
}

func (o OrderOptions) normalized() OrderOptions {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	o.FrontendURL = strings.TrimRight(o.FrontendURL, "/")
	return o
}

// PlaceResult describes outcome of order placement.
type PlaceResult struct {
	Order      *model.Order
	SessionURL string
}

// OrderQuery serves owner scoped reads. It has no event dependencies, so
// event handlers may depend on it.
type OrderQuery struct {
	orders repository.OrderRepository
}

// NewOrderQuery constructs OrderQuery.
func NewOrderQuery(orders repository.OrderRepository) *OrderQuery {
	return &OrderQuery{orders: orders}
}

// Order returns order owned by userID.
func (q *OrderQuery) Order(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domainErrors.ErrNotFound
	}
	order, err := q.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotOwner
	}
	return order, nil
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	query     *OrderQuery
	orders    repository.OrderRepository
	gateway   PaymentGateway
	publisher EventPublisher
	opts      OrderOptions
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, gateway PaymentGateway, publisher EventPublisher, opts OrderOptions) *OrderUseCase {
	return &OrderUseCase{
		query:     NewOrderQuery(orders),
		orders:    orders,
		gateway:   gateway,
		publisher: publisher,
		opts:      opts.normalized(),
	}
}

// Place validates and persists a new order for userID. Online orders get a
// checkout session; when the session cannot be created the order is removed.
func (u *OrderUseCase) Place(ctx context.Context, userID int64, in PlaceOrderInput) (*PlaceResult, error) {
	method, total, err := ValidatePlacement(in)
	if err != nil {
		return nil, err
	}

	now := u.opts.Now()
	order := &model.Order{
		ID:            u.opts.NewID(),
		UserID:        userID,
		Items:         in.Items,
		Amount:        total.Major(),
		Address:       in.Address,
		PaymentMethod: method,
		Status:        model.OrderStatusAwaitingPayment,
		Date:          now,
		UpdatedAt:     now,
	}
	if method == model.PaymentMethodCOD {
		order.Status = model.OrderStatusCODPending
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if method == model.PaymentMethodCOD {
		u.emit(ctx, model.OrderEventPlaced, *order, "")
		return &PlaceResult{Order: order}, nil
	}

	if u.gateway == nil || !u.gateway.Enabled() {
		u.discard(ctx, order.ID)
		return nil, domainErrors.ErrPaymentUnavailable
	}

	sessionURL, err := u.gateway.CreateCheckoutSession(ctx, order.Items, u.verifyURL(order.ID, true), u.verifyURL(order.ID, false))
	if err != nil {
		u.discard(ctx, order.ID)
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPaymentSession, err)
	}

	return &PlaceResult{Order: order, SessionURL: sessionURL}, nil
}

// Verify finalizes an online order after the payment redirect. Success marks
// the order paid; failure removes it. Returns whether the order is paid.
func (u *OrderUseCase) Verify(ctx context.Context, orderID string, success bool) (bool, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return false, domainErrors.ErrInvalidOrder
	}

	if success {
		return u.confirmPayment(ctx, orderID)
	}
	return false, u.rejectPayment(ctx, orderID)
}

func (u *OrderUseCase) confirmPayment(ctx context.Context, orderID string) (bool, error) {
	order, changed, err := u.orders.MarkPaid(ctx, orderID)
	if err != nil {
		return false, err
	}
	if changed {
		u.emit(ctx, model.OrderEventPaymentConfirmed, *order, model.OrderStatusAwaitingPayment)
		return true, nil
	}
	if order.Payment {
		return true, nil
	}
	return false, domainErrors.ErrNotAwaitingPayment
}

func (u *OrderUseCase) rejectPayment(ctx context.Context, orderID string) error {
	removed, err := u.orders.DeleteUnpaid(ctx, orderID)
	if err != nil {
		return err
	}
	if removed {
		return nil
	}

	// A retried failure callback finds nothing left to discard.
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return err
	}
	return domainErrors.ErrNotAwaitingPayment
}

// ListByUser returns orders of the user, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns every order for the admin panel.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// Get returns order owned by userID.
func (u *OrderUseCase) Get(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	return u.query.Order(ctx, userID, orderID)
}

// UpdateStatus sets order status on behalf of an admin. Any transition is accepted.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID string, status string) (*model.Order, error) {
	orderID = strings.TrimSpace(orderID)
	next := model.OrderStatus(strings.TrimSpace(status))
	if orderID == "" || next == "" {
		return nil, domainErrors.ErrInvalidStatus
	}

	order, previous, err := u.orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return nil, err
	}

	u.emit(ctx, model.OrderEventStatusChanged, *order, previous)
	return order, nil
}

// Cancel moves an order of userID to Cancelled while it is still cancellable.
func (u *OrderUseCase) Cancel(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domainErrors.ErrInvalidOrder
	}

	for attempt := 0; attempt < cancelAttempts; attempt++ {
		order, err := u.Get(ctx, userID, orderID)
		if err != nil {
			return nil, err
		}
		if !order.Cancellable() {
			return nil, domainErrors.ErrNotCancellable
		}

		updated, ok, err := u.orders.CompareAndSetStatus(ctx, orderID, order.Status, model.OrderStatusCancelled)
		if err != nil {
			return nil, err
		}
		if ok {
			u.emit(ctx, model.OrderEventCancelled, *updated, order.Status)
			return updated, nil
		}
	}

	return nil, domainErrors.ErrNotCancellable
}

func (u *OrderUseCase) verifyURL(orderID string, success bool) string {
	return fmt.Sprintf("%s/verify?success=%t&orderId=%s", u.opts.FrontendURL, success, url.QueryEscape(orderID))
}

// discard removes an order whose payment never started. Runs detached from
// request cancellation.
func (u *OrderUseCase) discard(ctx context.Context, orderID string) {
	if _, err := u.orders.DeleteUnpaid(context.WithoutCancel(ctx), orderID); err != nil {
		u.opts.Logger.Error("failed to discard unpaid order",
			slog.String("order", orderID),
			slog.String("error", err.Error()),
		)
	}
}

func (u *OrderUseCase) emit(ctx context.Context, typ model.OrderEventType, order model.Order, previous model.OrderStatus) {
	if u.publisher == nil {
		return
	}
	u.publisher.Publish(ctx, model.OrderEvent{
		ID:             u.opts.NewID(),
		Type:           typ,
		Order:          order,
		PreviousStatus: previous,
		OccurredAt:     u.opts.Now(),
	})
}
