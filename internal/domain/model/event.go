package model

import "time"

// OrderEventType names a committed order transition.
type OrderEventType string

const (
	OrderEventPlaced           OrderEventType = "order.placed"
	OrderEventPaymentConfirmed OrderEventType = "order.payment_confirmed"
	OrderEventStatusChanged    OrderEventType = "order.status_changed"
	OrderEventCancelled        OrderEventType = "order.cancelled"
)

// OrderEvent is emitted after an order change has been persisted.
type OrderEvent struct {
	ID             string
	Type           OrderEventType
	Order          Order
	PreviousStatus OrderStatus
	OccurredAt     time.Time
}
