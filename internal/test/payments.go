package test

import (
	"context"
	"sync"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// CheckoutCall records a checkout session request.
type CheckoutCall struct {
	Items      []model.LineItem
	SuccessURL string
	CancelURL  string
}

// GatewayStub imitates a payment gateway.
type GatewayStub struct {
	Disabled bool
	URL      string
	Err      error
	Calls    []CheckoutCall
}

// Enabled reports configured availability.
func (g *GatewayStub) Enabled() bool { return !g.Disabled }

// CreateCheckoutSession records call and returns configured result.
func (g *GatewayStub) CreateCheckoutSession(ctx context.Context, items []model.LineItem, successURL, cancelURL string) (string, error) {
	g.Calls = append(g.Calls, CheckoutCall{Items: items, SuccessURL: successURL, CancelURL: cancelURL})
	if g.Err != nil {
		return "", g.Err
	}
	if g.URL != "" {
		return g.URL, nil
	}
	return "https://checkout.test/session", nil
}

// PublisherStub collects published events.
type PublisherStub struct {
	mu     sync.Mutex
	events []model.OrderEvent
}

// Publish stores event.
func (p *PublisherStub) Publish(ctx context.Context, event model.OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns copy of published events.
func (p *PublisherStub) Events() []model.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.OrderEvent(nil), p.events...)
}

// Types returns published event types in order.
func (p *PublisherStub) Types() []model.OrderEventType {
	var out []model.OrderEventType
	for _, e := range p.Events() {
		out = append(out, e.Type)
	}
	return out
}
