package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidItem          = errors.New("invalid item")
	ErrNotOwner             = errors.New("order belongs to another user")
	ErrNotCancellable       = errors.New("order cannot be cancelled after confirmation")
	ErrNotAwaitingPayment   = errors.New("order is not awaiting payment")
	ErrPaymentUnavailable   = errors.New("online payment unavailable")
	ErrPaymentSession       = errors.New("payment session failed")
)

// Registration failures refine ErrInvalidCredentials.
var (
	ErrInvalidEmail = fmt.Errorf("%w: email is not valid", ErrInvalidCredentials)
	ErrWeakPassword = fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidCredentials)
)
