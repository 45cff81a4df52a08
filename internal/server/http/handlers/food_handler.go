package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatsprint/internal/domain/repository"
	"github.com/polkiloo/eatsprint/internal/server/http/dto"
)

// FoodHandler serves the catalog.
type FoodHandler struct {
	facade CatalogFacade
}

// NewFoodHandler constructs FoodHandler.
func NewFoodHandler(facade CatalogFacade) *FoodHandler {
	return &FoodHandler{facade: facade}
}

// List handles GET /api/food/list.
func (h *FoodHandler) List(c *gin.Context) {
	foods, err := h.facade.Foods(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	data := make([]dto.FoodResponse, 0, len(foods))
	for _, food := range foods {
		data = append(data, toFoodResponse(food))
	}
	c.JSON(http.StatusOK, dto.FoodListResponse{Success: true, Data: data})
}

const healthTimeout = 2 * time.Second

// Health returns GET /healthz handler probing every checker.
func Health(checkers ...repository.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		for _, checker := range checkers {
			if err := checker.HealthCheck(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, dto.Response{Message: "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, dto.Response{Success: true, Message: "ok"})
	}
}
