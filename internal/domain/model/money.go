package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MinorAmount is a money value in the smallest currency unit (paise).
// Placement payloads, stored line items and gateway line items use it.
type MinorAmount int64

// Major converts the value into major currency units.
func (m MinorAmount) Major() MajorAmount {
	return MajorAmount{d: decimal.New(int64(m), -2)}
}

// MajorAmount is a money value in major currency units (rupees).
// Order totals and catalog prices are kept at rest in this form.
type MajorAmount struct {
	d decimal.Decimal
}

// NewMajorAmount wraps decimal value.
func NewMajorAmount(d decimal.Decimal) MajorAmount {
	return MajorAmount{d: d}
}

// ParseMajorAmount parses decimal text such as "1000.00".
func ParseMajorAmount(s string) (MajorAmount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return MajorAmount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return MajorAmount{d: d}, nil
}

// Decimal exposes underlying decimal value.
func (a MajorAmount) Decimal() decimal.Decimal {
	return a.d
}

// Minor converts the value into minor units, rounding half away from zero.
func (a MajorAmount) Minor() MinorAmount {
	return MinorAmount(a.d.Shift(2).Round(0).IntPart())
}

// Equal reports whether both amounts denote the same value.
func (a MajorAmount) Equal(other MajorAmount) bool {
	return a.d.Equal(other.d)
}

// String renders the amount with two decimal places.
func (a MajorAmount) String() string {
	return a.d.StringFixed(2)
}

// MarshalJSON renders the amount as a bare JSON number with two decimals.
func (a MajorAmount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both quoted and bare numbers.
func (a *MajorAmount) UnmarshalJSON(data []byte) error {
	return a.d.UnmarshalJSON(data)
}
