package model

import (
	"strings"
	"time"
)

// OrderStatus is the fulfillment label of an order. The set is open: admins
// may store labels beyond the constants below.
type OrderStatus string

const (
	// OrderStatusAwaitingPayment is the unset status of an online order.
	OrderStatusAwaitingPayment     OrderStatus = ""
	OrderStatusCODPending          OrderStatus = "COD - Pending"
	OrderStatusPendingConfirmation OrderStatus = "Pending Confirmation"
	OrderStatusConfirmed           OrderStatus = "Confirmed"
	OrderStatusFoodProcessing      OrderStatus = "Food Processing"
	OrderStatusPreparing           OrderStatus = "Preparing"
	OrderStatusOutForDelivery      OrderStatus = "Out for Delivery"
	OrderStatusDelivered           OrderStatus = "Delivered"
	OrderStatusCancelled           OrderStatus = "Cancelled"
)

// cancellableMarkers is matched case-insensitively as substrings of the current status.
var cancellableMarkers = []string{"food processing", "pending", "placed"}

// Cancellable reports whether the customer may still cancel an order in this status.
func (s OrderStatus) Cancellable() bool {
	lower := strings.ToLower(string(s))
	if lower == strings.ToLower(string(OrderStatusCODPending)) {
		return true
	}
	for _, marker := range cancellableMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsDelivered reports whether status marks a completed delivery.
func (s OrderStatus) IsDelivered() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(OrderStatusDelivered))
}

// Label returns human readable status, substituting the unset one.
func (s OrderStatus) Label() string {
	if s == OrderStatusAwaitingPayment {
		return string(OrderStatusPendingConfirmation)
	}
	return string(s)
}

// PaymentMethod tells how an order is paid.
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCOD    PaymentMethod = "cod"
)

// ParsePaymentMethod normalizes client supplied method; empty means online.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PaymentMethodOnline:
		return PaymentMethodOnline, true
	case PaymentMethodCOD:
		return PaymentMethodCOD, true
	default:
		return "", false
	}
}

// LineItem is a priced snapshot of one cart entry.
type LineItem struct {
	Name      string
	UnitPrice MinorAmount
	Quantity  int
}

// Subtotal returns unit price multiplied by quantity.
func (i LineItem) Subtotal() MinorAmount {
	return i.UnitPrice * MinorAmount(i.Quantity)
}

// MaxOrderTotal is the largest amount the orders.amount NUMERIC(12,2) column holds.
const MaxOrderTotal MinorAmount = 999_999_999_999

// TotalOf sums subtotals of given items.
func TotalOf(items []LineItem) MinorAmount {
	var total MinorAmount
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// BoundedTotalOf sums subtotals like TotalOf but reports false when any
// subtotal or the running sum leaves the range 0..MaxOrderTotal.
func BoundedTotalOf(items []LineItem) (MinorAmount, bool) {
	var total MinorAmount
	for _, item := range items {
		if item.UnitPrice < 0 || item.Quantity < 0 {
			return 0, false
		}
		if item.Quantity > 0 && item.UnitPrice > MaxOrderTotal/MinorAmount(item.Quantity) {
			return 0, false
		}
		total += item.Subtotal()
		if total > MaxOrderTotal {
			return 0, false
		}
	}
	return total, true
}

// Address is a delivery address snapshot.
type Address struct {
	FirstName string
	LastName  string
	Street    string
	City      string
	State     string
	Zipcode   string
	Country   string
	Phone     string
	Email     string
}

// Order describes food order placed by a user.
type Order struct {
	ID            string
	UserID        int64
	Items         []LineItem
	Amount        MajorAmount
	Address       Address
	PaymentMethod PaymentMethod
	Payment       bool
	Status        OrderStatus
	Date          time.Time
	UpdatedAt     time.Time
}

// StatusLabel returns the status shown to people. An unset status reads
// "Confirmed" once paid and "Pending Confirmation" before.
func (o Order) StatusLabel() string {
	if o.Status == OrderStatusAwaitingPayment && o.Payment {
		return string(OrderStatusConfirmed)
	}
	return o.Status.Label()
}

// Cancellable evaluates the cancellation allow-list against the displayed status.
func (o Order) Cancellable() bool {
	return OrderStatus(o.StatusLabel()).Cancellable()
}

// AwaitingPayment reports whether order is an unpaid online order.
func (o Order) AwaitingPayment() bool {
	return o.PaymentMethod == PaymentMethodOnline && !o.Payment
}

// Payable reports whether a successful payment may still be recorded.
// Cancelled orders are excluded.
func (o Order) Payable() bool {
	return o.AwaitingPayment() && o.Status != OrderStatusCancelled
}
