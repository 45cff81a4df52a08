package notification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/polkiloo/eatsprint/internal/adapter/mailer"
	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// Sender delivers rendered emails.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// EmailNotifier turns order events into customer and admin emails.
type EmailNotifier struct {
	sender Sender
	admins []string
}

// NewEmailNotifier constructs notifier. Admin alerts go to admins.
func NewEmailNotifier(sender Sender, admins []string) *EmailNotifier {
	return &EmailNotifier{sender: sender, admins: admins}
}

// Name identifies notifier in logs and metrics.
func (n *EmailNotifier) Name() string { return "email" }

// Handle sends emails for event. Delivery errors of separate emails are joined.
func (n *EmailNotifier) Handle(ctx context.Context, event model.OrderEvent) error {
	view := newOrderView(event.Order)
	customer := strings.TrimSpace(event.Order.Address.Email)

	var errs []error
	send := func(to []string, subject string, tpl *template.Template) {
		if len(to) == 0 {
			return
		}
		if err := n.send(ctx, to, subject, tpl, view); err != nil {
			errs = append(errs, err)
		}
	}

	switch event.Type {
	case model.OrderEventPlaced:
		send(recipients(customer), "Order Confirmation - Order #"+view.ShortID, placedTemplate)
		send(n.admins, "New Order Received - Order #"+view.ShortID, adminTemplate)
	case model.OrderEventPaymentConfirmed:
		send(recipients(customer), "Order Confirmed - Order #"+view.ShortID, confirmedTemplate)
		send(n.admins, "New Order Received - Order #"+view.ShortID, adminTemplate)
	case model.OrderEventStatusChanged, model.OrderEventCancelled:
		send(recipients(customer), "Order Status: "+view.Status, statusTemplate)
		if event.Type == model.OrderEventStatusChanged && event.Order.Status.IsDelivered() {
			send(recipients(customer), "Thank You for Your Order - Order #"+strings.ToUpper(view.ShortID), thankYouTemplate)
		}
	}

	return errors.Join(errs...)
}

func (n *EmailNotifier) send(ctx context.Context, to []string, subject string, tpl *template.Template, view orderView) error {
	var body bytes.Buffer
	if err := tpl.ExecuteTemplate(&body, "layout", view.withHeading(subject)); err != nil {
		return fmt.Errorf("render %q: %w", subject, err)
	}
	return n.sender.Send(ctx, mailer.Message{To: to, Subject: subject, HTML: body.String()})
}

func recipients(email string) []string {
	if email == "" {
		return nil
	}
	return []string{email}
}

type itemView struct {
	Name     string
	Quantity int
	Subtotal string
}

type orderView struct {
	Heading       string
	OrderID       string
	ShortID       string
	Status        string
	StatusMessage string
	Payment       string
	Amount        string
	Items         []itemView
	Address       model.Address
}

func newOrderView(order model.Order) orderView {
	status := order.StatusLabel()
	view := orderView{
		OrderID:       order.ID,
		ShortID:       shortID(order.ID),
		Status:        status,
		StatusMessage: statusMessage(status),
		Payment:       paymentLabel(order),
		Amount:        order.Amount.String(),
		Address:       order.Address,
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, itemView{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().Major().String(),
		})
	}
	return view
}

func (v orderView) withHeading(heading string) orderView {
	v.Heading = heading
	return v
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

func paymentLabel(order model.Order) string {
	switch {
	case order.PaymentMethod == model.PaymentMethodCOD:
		return "Cash on Delivery"
	case order.Payment:
		return "Paid Online"
	default:
		return "Awaiting Payment"
	}
}
