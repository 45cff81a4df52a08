package broker

import (
	"encoding/json"
	"time"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// eventPayload is the wire form of an order event shared by all sinks.
type eventPayload struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	OrderID        string            `json:"orderId"`
	UserID         int64             `json:"userId"`
	Status         string            `json:"status"`
	PreviousStatus string            `json:"previousStatus,omitempty"`
	Payment        bool              `json:"payment"`
	PaymentMethod  string            `json:"paymentMethod"`
	Amount         model.MajorAmount `json:"amount"`
	OccurredAt     time.Time         `json:"occurredAt"`
}

func encodeEvent(event model.OrderEvent) ([]byte, error) {
	return json.Marshal(eventPayload{
		ID:             event.ID,
		Type:           string(event.Type),
		OrderID:        event.Order.ID,
		UserID:         event.Order.UserID,
		Status:         event.Order.StatusLabel(),
		PreviousStatus: string(event.PreviousStatus),
		Payment:        event.Order.Payment,
		PaymentMethod:  string(event.Order.PaymentMethod),
		Amount:         event.Order.Amount,
		OccurredAt:     event.OccurredAt.UTC(),
	})
}
