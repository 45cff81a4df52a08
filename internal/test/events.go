package test

import (
	"context"
	"sync"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// HandlerStub records handled events.
type HandlerStub struct {
	NameVal  string
	HandleFn func(context.Context, model.OrderEvent) error

	mu     sync.Mutex
	events []model.OrderEvent
}

// Name returns configured handler name.
func (h *HandlerStub) Name() string {
	if h.NameVal != "" {
		return h.NameVal
	}
	return "stub"
}

// Handle records event and delegates to override.
func (h *HandlerStub) Handle(ctx context.Context, event model.OrderEvent) error {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	if h.HandleFn != nil {
		return h.HandleFn(ctx, event)
	}
	return nil
}

// Events returns copy of handled events.
func (h *HandlerStub) Events() []model.OrderEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.OrderEvent(nil), h.events...)
}

// ObserverStub counts dispatcher outcomes.
type ObserverStub struct {
	mu        sync.Mutex
	Published map[model.OrderEventType]int
	Dropped   map[model.OrderEventType]int
	Failed    map[string]int
}

// NewObserverStub constructs observer with initialized counters.
func NewObserverStub() *ObserverStub {
	return &ObserverStub{
		Published: make(map[model.OrderEventType]int),
		Dropped:   make(map[model.OrderEventType]int),
		Failed:    make(map[string]int),
	}
}

// EventPublished counts enqueued event.
func (o *ObserverStub) EventPublished(t model.OrderEventType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Published[t]++
}

// EventDropped counts dropped event.
func (o *ObserverStub) EventDropped(t model.OrderEventType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Dropped[t]++
}

// HandlerFailed counts handler failure.
func (o *ObserverStub) HandlerFailed(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Failed[name]++
}

// Snapshot returns counter copies under lock.
func (o *ObserverStub) Snapshot() (published, dropped map[model.OrderEventType]int, failed map[string]int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	published = make(map[model.OrderEventType]int, len(o.Published))
	for k, v := range o.Published {
		published[k] = v
	}
	dropped = make(map[model.OrderEventType]int, len(o.Dropped))
	for k, v := range o.Dropped {
		dropped[k] = v
	}
	failed = make(map[string]int, len(o.Failed))
	for k, v := range o.Failed {
		failed[k] = v
	}
	return published, dropped, failed
}
