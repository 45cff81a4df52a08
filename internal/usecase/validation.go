package usecase

import (
	"strings"

	domainErrors "github.com/polkiloo/eatsprint/internal/domain/errors"
	"github.com/polkiloo/eatsprint/internal/domain/model"
)

// PlaceOrderInput is a client submitted order. Item prices and Amount are minor units.
type PlaceOrderInput struct {
	Items         []model.LineItem
	Amount        *model.MinorAmount
	Address       model.Address
	PaymentMethod string
}

// ValidatePlacement checks the submission and returns the resolved payment
// method together with the computed total.
func ValidatePlacement(in PlaceOrderInput) (model.PaymentMethod, model.MinorAmount, error) {
	method, ok := model.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return "", 0, domainErrors.ErrInvalidPaymentMethod
	}

	if len(in.Items) == 0 {
		return "", 0, domainErrors.ErrInvalidOrder
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" || item.UnitPrice <= 0 || item.Quantity <= 0 {
			return "", 0, domainErrors.ErrInvalidOrder
		}
	}

	if err := validateAddress(in.Address); err != nil {
		return "", 0, err
	}

	total, ok := model.BoundedTotalOf(in.Items)
	if !ok {
		return "", 0, domainErrors.ErrInvalidOrder
	}
	if in.Amount != nil && *in.Amount != total {
		return "", 0, domainErrors.ErrInvalidAmount
	}

	return method, total, nil
}

func validateAddress(a model.Address) error {
	required := []string{a.FirstName, a.LastName, a.Street, a.City, a.State, a.Zipcode, a.Country, a.Phone, a.Email}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return domainErrors.ErrInvalidOrder
		}
	}
	if !validEmail(normalizeEmail(a.Email)) {
		return domainErrors.ErrInvalidOrder
	}
	return nil
}
