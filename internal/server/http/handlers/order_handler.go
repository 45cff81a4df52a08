package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/order/place.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.facade.PlaceOrder(c.Request.Context(), CurrentUserID(c), toPlaceInput(req))
	if err != nil {
		writeError(c, err)
		return
	}

	if result.Order.PaymentMethod == model.PaymentMethodCOD {
		c.JSON(http.StatusOK, dto.PlaceOrderResponse{
			Success: true,
			COD:     true,
			OrderID: result.Order.ID,
			Message: "Order placed (COD)",
		})
		return
	}

	c.JSON(http.StatusOK, dto.PlaceOrderResponse{
		Success:    true,
		SessionURL: result.SessionURL,
		OrderID:    result.Order.ID,
		Message:    "Redirecting to payment",
	})
}

// Verify handles POST /api/order/verify, the unauthenticated payment callback.
func (h *OrderHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if !bindJSON(c, &req) {
		return
	}

	paid, err := h.facade.VerifyOrder(c.Request.Context(), strings.TrimSpace(req.OrderID), bool(req.Success))
	if err != nil {
		writeError(c, err)
		return
	}
	if paid {
		c.JSON(http.StatusOK, dto.Response{Success: true, Message: "paid"})
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: false, Message: "not paid"})
}

// UserOrders handles /api/order/user-orders.
func (h *OrderHandler) UserOrders(c *gin.Context) {
	orders, err := h.facade.UserOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderList(orders))
}

// List handles GET /api/order/list for admins.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderList(orders))
}

// UpdateStatus handles POST /api/order/status for admins.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.facade.UpdateOrderStatus(c.Request.Context(), strings.TrimSpace(req.OrderID), req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Status Updated"})
}

// Cancel handles POST /api/order/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req dto.OrderIDRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.facade.CancelOrder(c.Request.Context(), CurrentUserID(c), strings.TrimSpace(req.OrderID)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Order cancelled successfully"})
}
