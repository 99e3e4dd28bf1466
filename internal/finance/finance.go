// Package finance holds the pure calculators behind the dashboard forms:
// loan amortisation, insurance premiums, investment return and impact,
// funding progress and emergency pool status.
package finance

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTerm is returned when a duration in months is not positive.
	ErrInvalidTerm = errors.New("term must be at least one month")
	// ErrNegativeAmount is returned when an amount or rate is below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

var (
	hundred      = decimal.NewFromInt(100)
	twelve       = decimal.NewFromInt(12)
	annualFactor = decimal.RequireFromString("0.9")
)

// cents rounds half away from zero to two decimal places.
func cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
