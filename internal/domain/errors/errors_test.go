package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"invalid order", ErrInvalidOrder},
		{"invalid amount", ErrInvalidAmount},
		{"invalid payment method", ErrInvalidPaymentMethod},
		{"invalid status", ErrInvalidStatus},
		{"invalid item", ErrInvalidItem},
		{"not owner", ErrNotOwner},
		{"not cancellable", ErrNotCancellable},
		{"not awaiting payment", ErrNotAwaitingPayment},
		{"payment unavailable", ErrPaymentUnavailable},
		{"payment session", ErrPaymentSession},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", tc.err)
			}
		})
	}
}

func TestRegistrationErrorsRefineInvalidCredentials(t *testing.T) {
	for _, err := range []error{ErrInvalidEmail, ErrWeakPassword} {
		if !stdErrors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected %v to match ErrInvalidCredentials", err)
		}
	}
	if stdErrors.Is(ErrInvalidEmail, ErrWeakPassword) {
		t.Fatal("registration errors must stay distinguishable")
	}
}
