package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	domainErrors "github.com/polkiloo/eatsprint/internal/domain/errors"
	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/server/http/dto"
	"github.com/polkiloo/eatsprint/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/eatsprint/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newServer(t *testing.T, hub *Hub, userID int64) string {
	t.Helper()
	engine := gin.New()
	engine.GET("/ws/:orderId", func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, userID)
		c.Next()
	}, hub.Serve)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readUpdate(t *testing.T, conn *websocket.Conn) dto.OrderUpdate {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	var update dto.OrderUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		t.Fatalf("decode update %q: %v", data, err)
	}
	return update
}

func TestHubPushesCurrentStateAndEvents(t *testing.T) {
	var gotUser atomic.Int64
	facade := testhelpers.OrderFacadeStub{OrderFn: func(_ context.Context, userID int64, orderID string) (*model.Order, error) {
		gotUser.Store(userID)
		order := testhelpers.SampleOrder(orderID, userID)
		return &order, nil
	}}
	hub := NewHub(facade, Options{Logger: testLogger()})
	hub.Start(context.Background())
	t.Cleanup(hub.Stop)

	url := newServer(t, hub, 5)
	conn, resp, err := websocket.DefaultDialer.Dial(url+"/ws/order-1", nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	_ = resp.Body.Close()
	defer conn.Close()

	initial := readUpdate(t, conn)
	if got := gotUser.Load(); got != 5 {
		t.Fatalf("expected lookup for user 5, got %d", got)
	}
	if initial.OrderID != "order-1" || initial.Status != "COD - Pending" || initial.Payment {
		t.Fatalf("unexpected initial state: %+v", initial)
	}

	other := testhelpers.SampleOrder("order-2", 5)
	_ = hub.Handle(context.Background(), model.OrderEvent{Type: model.OrderEventStatusChanged, Order: other})

	delivered := testhelpers.SampleOrder("order-1", 5)
	delivered.Status = model.OrderStatusDelivered
	if err := hub.Handle(context.Background(), model.OrderEvent{Type: model.OrderEventStatusChanged, Order: delivered}); err != nil {
		t.Fatalf("handle returned error: %v", err)
	}

	update := readUpdate(t, conn)
	if update.OrderID != "order-1" || update.Status != "Delivered" || update.Event != string(model.OrderEventStatusChanged) {
		t.Fatalf("unexpected update: %+v", update)
	}
}

func TestHubRejectsForeignAndMissingOrders(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not owner", err: domainErrors.ErrNotOwner, status: http.StatusForbidden},
		{name: "not found", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "internal", err: context.DeadlineExceeded, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{OrderFn: func(context.Context, int64, string) (*model.Order, error) {
				return nil, tt.err
			}}
			hub := NewHub(facade, Options{Logger: testLogger()})
			hub.Start(context.Background())
			t.Cleanup(hub.Stop)

			url := newServer(t, hub, 1)
			_, resp, err := websocket.DefaultDialer.Dial(url+"/ws/order-1", nil)
			if err == nil {
				t.Fatal("expected handshake to fail")
			}
			if resp == nil || resp.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %+v", tt.status, resp)
			}
			_ = resp.Body.Close()
		})
	}
}

func TestHubStopClosesSubscribers(t *testing.T) {
	hub := NewHub(testhelpers.OrderFacadeStub{}, Options{Logger: testLogger()})
	hub.Start(context.Background())
	hub.Start(context.Background())

	url := newServer(t, hub, 1)
	conn, resp, err := websocket.DefaultDialer.Dial(url+"/ws/order-1", nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	_ = resp.Body.Close()
	defer conn.Close()
	_ = readUpdate(t, conn)

	hub.Stop()
	hub.Stop()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("expected going away close, got %v", err)
	}

	if err := hub.Handle(context.Background(), model.OrderEvent{Order: testhelpers.SampleOrder("order-1", 1)}); err != nil {
		t.Fatalf("handle after stop returned error: %v", err)
	}
}

func TestHubRejectsForeignOrigin(t *testing.T) {
	hub := NewHub(testhelpers.OrderFacadeStub{}, Options{AllowedOrigin: "https://shop.example.com/", Logger: testLogger()})
	hub.Start(context.Background())
	t.Cleanup(hub.Stop)

	url := newServer(t, hub, 1)
	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url+"/ws/order-1", header)
	if err == nil {
		t.Fatal("expected foreign origin to be rejected")
	}
	if resp != nil {
		_ = resp.Body.Close()
	}

	header.Set("Origin", "https://shop.example.com")
	conn, resp, err := websocket.DefaultDialer.Dial(url+"/ws/order-1", header)
	if err != nil {
		t.Fatalf("expected storefront origin to be accepted: %v", err)
	}
	_ = resp.Body.Close()
	_ = conn.Close()
}

func TestHubName(t *testing.T) {
	if got := NewHub(nil, Options{}).Name(); got != "websocket" {
		t.Fatalf("unexpected name %q", got)
	}
}
