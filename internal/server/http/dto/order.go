package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// LineItem is an order entry priced in minor units.
type LineItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Address mirrors delivery form fields.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// PlaceOrderRequest describes checkout payload. Amount is optional and in minor units.
type PlaceOrderRequest struct {
	Items         []LineItem `json:"items"`
	Amount        *int64     `json:"amount"`
	Address       Address    `json:"address"`
	PaymentMethod string     `json:"paymentMethod"`
}

// PlaceOrderResponse reports created order and, for online payment, the checkout URL.
type PlaceOrderResponse struct {
	Success    bool   `json:"success"`
	COD        bool   `json:"cod,omitempty"`
	SessionURL string `json:"session_url,omitempty"`
	OrderID    string `json:"orderId"`
	Message    string `json:"message,omitempty"`
}

// Flag decodes booleans sent either as JSON bool or as "true"/"false" text.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flag(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("flag must be boolean: %w", err)
	}
	*f = Flag(b)
	return nil
}

// VerifyRequest is the payment outcome posted by the storefront.
type VerifyRequest struct {
	OrderID string `json:"orderId"`
	Success Flag   `json:"success"`
}

// OrderIDRequest references a single order.
type OrderIDRequest struct {
	OrderID string `json:"orderId"`
}

// StatusRequest sets order status.
type StatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// OrderResponse is the external order document.
type OrderResponse struct {
	ID            string            `json:"_id"`
	UserID        int64             `json:"userId"`
	Items         []LineItem        `json:"items"`
	Amount        model.MajorAmount `json:"amount"`
	Address       Address           `json:"address"`
	PaymentMethod string            `json:"paymentMethod"`
	Payment       bool              `json:"payment"`
	Status        string            `json:"status"`
	Date          time.Time         `json:"date"`
}

// OrderListResponse wraps a list of orders.
type OrderListResponse struct {
	Success bool            `json:"success"`
	Data    []OrderResponse `json:"data"`
}

// OrderUpdate is pushed to live order subscribers.
type OrderUpdate struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Payment bool   `json:"payment"`
	Event   string `json:"event,omitempty"`
}
