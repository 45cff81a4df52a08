package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// Handler reacts to committed order events.
type Handler interface {
	Name() string
	Handle(ctx context.Context, event model.OrderEvent) error
}

// Observer is notified about dispatcher outcomes.
type Observer interface {
	EventPublished(model.OrderEventType)
	EventDropped(model.OrderEventType)
	HandlerFailed(handler string)
}

type nopObserver struct{}

func (nopObserver) EventPublished(model.OrderEventType) {}
func (nopObserver) EventDropped(model.OrderEventType)   {}
func (nopObserver) HandlerFailed(string)                {}

// DispatcherOptions tunes dispatcher pool.
type DispatcherOptions struct {
	Workers   int
	QueueSize int
	Logger    *slog.Logger
	Observer  Observer
}

// Dispatcher fans order events out to handlers on a worker pool. Publishing
// never blocks: when the queue is full the event is dropped.
type Dispatcher struct {
	handlers []Handler
	workers  int
	logger   *slog.Logger
	observer Observer

	jobs    chan model.OrderEvent
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	started bool
	cancel  context.CancelFunc
}

// NewDispatcher constructs dispatcher. Nil handlers are skipped.
func NewDispatcher(handlers []Handler, opts DispatcherOptions) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	active := make([]Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			active = append(active, h)
		}
	}

	return &Dispatcher{
		handlers: active,
		workers:  opts.Workers,
		logger:   opts.Logger,
		observer: opts.Observer,
		jobs:     make(chan model.OrderEvent, opts.QueueSize),
	}
}

// Handlers returns names of registered handlers.
func (d *Dispatcher) Handlers() []string {
	names := make([]string, 0, len(d.handlers))
	for _, h := range d.handlers {
		names = append(names, h.Name())
	}
	return names
}

// Publish enqueues event for asynchronous handling.
func (d *Dispatcher) Publish(ctx context.Context, event model.OrderEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(event, "dispatcher stopped")
		return
	}

	select {
	case d.jobs <- event:
		d.observer.EventPublished(event.Type)
	default:
		d.drop(event, "queue full")
	}
}

// Start launches worker pool. Handlers run with a context derived from ctx.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop closes the queue and waits until queued events are handled or ctx expires.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	cancel := d.cancel
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}
	defer cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for event := range d.jobs {
		for _, h := range d.handlers {
			d.handle(ctx, h, event)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, h Handler, event model.OrderEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.fail(h, event, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := h.Handle(ctx, event); err != nil {
		d.fail(h, event, err)
	}
}

func (d *Dispatcher) fail(h Handler, event model.OrderEvent, err error) {
	d.observer.HandlerFailed(h.Name())
	d.logger.Error("order event handler failed",
		slog.String("handler", h.Name()),
		slog.String("event", string(event.Type)),
		slog.String("order", event.Order.ID),
		slog.String("error", err.Error()),
	)
}

func (d *Dispatcher) drop(event model.OrderEvent, reason string) {
	d.observer.EventDropped(event.Type)
	d.logger.Warn("order event dropped",
		slog.String("event", string(event.Type)),
		slog.String("order", event.Order.ID),
		slog.String("reason", reason),
	)
}
