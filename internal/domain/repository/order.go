package repository

import (
	"context"
	"time"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	// MarkPaid flips payment flag of an unpaid, non-cancelled online order and moves an
	// unset status to Confirmed. Reports whether a row changed.
	MarkPaid(ctx context.Context, id string) (*model.Order, bool, error)
	// UpdateStatus sets status unconditionally and returns the status it replaced.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, model.OrderStatus, error)
	// CompareAndSetStatus sets status only when current status equals expected.
	CompareAndSetStatus(ctx context.Context, id string, expected, status model.OrderStatus) (*model.Order, bool, error)
	// DeleteUnpaid removes an unpaid online order. Reports whether a row was removed.
	DeleteUnpaid(ctx context.Context, id string) (bool, error)
	// DeleteUnpaidBefore purges unpaid online orders created before cutoff.
	DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
