package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RiskLevel grades projects and insurance plans.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ParseRiskLevel accepts any casing of a known level.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch r := RiskLevel(strings.ToLower(strings.TrimSpace(s))); r {
	case RiskLow, RiskMedium, RiskHigh:
		return r, nil
	}
	return "", fmt.Errorf("risk level %q: %w", s, ErrUnknownValue)
}

// Project is an investable water-sustainability project.
// FundingRaised may exceed FundingGoal; nothing enforces the ordering.
type Project struct {
	ID            string
	Name          string
	Description   string
	RiskLevel     RiskLevel
	ExpectedROI   decimal.Decimal // percent
	FundingGoal   decimal.Decimal
	FundingRaised decimal.Decimal
	Duration      string
	Category      string
	Impact        string
	Location      string
	ImageURL      string
}
