package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/eatsprint/internal/domain/errors"
	"github.com/polkiloo/eatsprint/internal/server/http/dto"
)

const paymentUnavailableMessage = "Online payment is temporarily unavailable. Please use Cash on Delivery."

// classify maps domain failures onto HTTP status and client message.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidPaymentMethod):
		return http.StatusBadRequest, "Invalid payment method"
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		return http.StatusBadRequest, "Amount does not match order items"
	case errors.Is(err, domainErrors.ErrInvalidOrder):
		return http.StatusBadRequest, "Invalid order details"
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		return http.StatusBadRequest, "Status is required"
	case errors.Is(err, domainErrors.ErrInvalidItem):
		return http.StatusBadRequest, "Item id is required"
	case errors.Is(err, domainErrors.ErrInvalidEmail):
		return http.StatusBadRequest, "Please enter a valid email"
	case errors.Is(err, domainErrors.ErrWeakPassword):
		return http.StatusBadRequest, "Please enter a strong password"
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domainErrors.ErrNotOwner):
		return http.StatusForbidden, "Unauthorized"
	case errors.Is(err, domainErrors.ErrNotCancellable):
		return http.StatusForbidden, "Order cannot be cancelled after confirmation"
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, domainErrors.ErrNotAwaitingPayment):
		return http.StatusConflict, "Order is not awaiting payment"
	case errors.Is(err, domainErrors.ErrPaymentUnavailable):
		return http.StatusServiceUnavailable, paymentUnavailableMessage
	case errors.Is(err, domainErrors.ErrPaymentSession):
		return http.StatusBadGateway, "Could not start online payment"
	default:
		return http.StatusInternalServerError, "Error"
	}
}

// writeError renders err in the response envelope. The error itself is
// attached to the gin context for request logging only.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, message := classify(err)
	if status == http.StatusServiceUnavailable {
		c.JSON(status, dto.PaymentUnavailableResponse{Message: message, StripeDisabled: true})
		return
	}
	c.JSON(status, dto.Response{Message: message})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, dto.Response{Message: "Invalid request body"})
}
