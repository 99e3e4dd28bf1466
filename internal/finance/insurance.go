package finance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Frequency is how often an insurance premium is billed.
type Frequency string

const (
	Monthly Frequency = "monthly"
	Annual  Frequency = "annual"
)

// ErrUnknownFrequency is returned by ParseFrequency.
var ErrUnknownFrequency = errors.New("unknown payment frequency")

// ParseFrequency accepts monthly or annual in any casing; "yearly" is an alias.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "":
		return Monthly, nil
	case "annual", "yearly":
		return Annual, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFrequency)
}

// InsuranceQuote is the cost of holding a plan for a number of months.
type InsuranceQuote struct {
	MonthlyPremium decimal.Decimal
	Months         int
	Frequency      Frequency
	Base           decimal.Decimal // premium × months
	Discount       decimal.Decimal
	Total          decimal.Decimal
}

// InsuranceCost prices premium × months, less a flat 10% when billed annually.
func InsuranceCost(premium decimal.Decimal, months int, freq Frequency) (InsuranceQuote, error) {
	if months <= 0 {
		return InsuranceQuote{}, ErrInvalidTerm
	}
	if premium.IsNegative() {
		return InsuranceQuote{}, ErrNegativeAmount
	}

	base := premium.Mul(decimal.NewFromInt(int64(months)))
	total := base
	if freq == Annual {
		total = base.Mul(annualFactor)
	}
	total = cents(total)

	return InsuranceQuote{
		MonthlyPremium: premium,
		Months:         months,
		Frequency:      freq,
		Base:           cents(base),
		Discount:       cents(base).Sub(total),
		Total:          total,
	}, nil
}
