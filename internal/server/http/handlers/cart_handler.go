package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatsprint/internal/domain/model"
	"github.com/polkiloo/eatsprint/internal/server/http/dto"
)

// CartHandler exposes the per-user cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Add handles POST /api/cart/add.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.AddToCart(c.Request.Context(), CurrentUserID(c), req.ItemID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Added To Cart"})
}

// Remove handles POST /api/cart/remove.
func (h *CartHandler) Remove(c *gin.Context) {
	var req dto.CartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.RemoveFromCart(c.Request.Context(), CurrentUserID(c), req.ItemID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Removed From Cart"})
}

// Get handles /api/cart/get.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Success: true, CartData: nonNilCart(cart)})
}

// Clear handles POST /api/cart/clear.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.facade.ClearCart(c.Request.Context(), CurrentUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Cart cleared"})
}

// Merge handles POST /api/cart/merge.
func (h *CartHandler) Merge(c *gin.Context) {
	var req dto.CartMergeRequest
	if !bindJSON(c, &req) {
		return
	}
	cart, err := h.facade.MergeCart(c.Request.Context(), CurrentUserID(c), req.CartData)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Success: true, CartData: nonNilCart(cart)})
}

// Quote handles POST /api/cart/quote.
func (h *CartHandler) Quote(c *gin.Context) {
	quote, err := h.facade.QuoteCart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuoteResponse{
		Success: true,
		Items:   toLineItems(quote.Items),
		Amount:  int64(quote.Total),
	})
}

func nonNilCart(cart model.Cart) model.Cart {
	if cart == nil {
		return model.Cart{}
	}
	return cart
}
