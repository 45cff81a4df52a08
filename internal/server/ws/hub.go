package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	domainErrors "github.com/polkiloo/eatsprint/internal/domain/errors"
	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/server/http/dto"
	"github.com/polkiloo/eatsprint/internal/server/http/middleware"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = pongWait * 9 / 10
	registerTimeout = 5 * time.Second
	sendBuffer      = 16
	broadcastBuffer = 256
	maxMessageSize  = 512
)

// OrderReader loads an order on behalf of its owner.
type OrderReader interface {
	Order(ctx context.Context, userID int64, orderID string) (*model.Order, error)
}

// Options tune the hub.
type Options struct {
	// AllowedOrigin restricts browser origins; empty accepts any.
	AllowedOrigin string
	Logger        *slog.Logger
}

// Hub pushes order updates to websocket subscribers of that order.
type Hub struct {
	orders   OrderReader
	logger   *slog.Logger
	upgrader websocket.Upgrader

	register   chan *client
	unregister chan *client
	broadcast  chan dto.OrderUpdate
	clients    map[string]map[*client]struct{}
	done       chan struct{}

	wg     sync.WaitGroup
	mu     sync.Mutex
	cancel context.CancelFunc
}

type client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	orderID string
}

// NewHub constructs Hub. Start must be called before subscribers can attach.
func NewHub(orders OrderReader, opts Options) *Hub {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	allowed := strings.TrimRight(opts.AllowedOrigin, "/")

	return &Hub{
		orders: orders,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed == "" || strings.EqualFold(origin, allowed)
			},
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan dto.OrderUpdate, broadcastBuffer),
		clients:    make(map[string]map[*client]struct{}),
		done:       make(chan struct{}),
	}
}

// Name identifies the hub among order event handlers.
func (h *Hub) Name() string {
	return "websocket"
}

// Handle forwards event to subscribers of its order. A saturated hub drops
// the update rather than stall the dispatcher.
func (h *Hub) Handle(_ context.Context, event model.OrderEvent) error {
	update := dto.OrderUpdate{
		OrderID: event.Order.ID,
		Status:  string(event.Order.Status),
		Payment: event.Order.Payment,
		Event:   string(event.Type),
	}
	select {
	case h.broadcast <- update:
	case <-h.done:
	default:
		h.logger.Warn("websocket broadcast queue full, update dropped", slog.String("order_id", update.OrderID))
	}
	return nil
}

// Start launches the subscription loop.
func (h *Hub) Start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h.cancel = cancel

	h.wg.Add(1)
	go h.run(runCtx)
}

// Stop disconnects every subscriber and waits for the loop to exit.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.mu.Unlock()

	h.wg.Wait()
}

func (h *Hub) run(ctx context.Context) {
	defer h.wg.Done()
	defer close(h.done)

	for {
		select {
		case c := <-h.register:
			set, ok := h.clients[c.orderID]
			if !ok {
				set = make(map[*client]struct{})
				h.clients[c.orderID] = set
			}
			set[c] = struct{}{}
		case c := <-h.unregister:
			h.remove(c)
		case update := <-h.broadcast:
			msg, err := json.Marshal(update)
			if err != nil {
				h.logger.Error("encode order update", slog.String("error", err.Error()))
				continue
			}
			for c := range h.clients[update.OrderID] {
				select {
				case c.send <- msg:
				default:
					h.remove(c)
				}
			}
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[string]map[*client]struct{})
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	set, ok := h.clients[c.orderID]
	if !ok {
		return
	}
	if _, exists := set[c]; exists {
		delete(set, c)
		close(c.send)
	}
	if len(set) == 0 {
		delete(h.clients, c.orderID)
	}
}

// Serve handles GET /api/order/ws/:orderId for the authenticated owner.
func (h *Hub) Serve(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDContextKey)
	orderID := strings.TrimSpace(c.Param("orderId"))

	order, err := h.orders.Order(c.Request.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.Response{Message: "Order not found"})
		case errors.Is(err, domainErrors.ErrNotOwner):
			c.JSON(http.StatusForbidden, dto.Response{Message: "Unauthorized"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, dto.Response{Message: "Error"})
		}
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	cl := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), orderID: order.ID}
	current, err := json.Marshal(dto.OrderUpdate{OrderID: order.ID, Status: string(order.Status), Payment: order.Payment})
	if err == nil {
		cl.send <- current
	}

	select {
	case h.register <- cl:
	case <-h.done:
		_ = conn.Close()
		return
	case <-time.After(registerTimeout):
		h.logger.Error("websocket hub is not running")
		_ = conn.Close()
		return
	}

	go cl.writePump()
	go cl.readPump()
}

func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
