package domain

import "github.com/shopspring/decimal"

// InsurancePlan is a subscribable cover product.
type InsurancePlan struct {
	ID             string
	Name           string
	Description    string
	MonthlyPremium decimal.Decimal
	Coverage       decimal.Decimal
	Benefits       []string
	Duration       string
	RiskLevel      RiskLevel
}

// LoanType is a loan product with its accepted amount and term ranges.
type LoanType struct {
	ID            string
	Name          string
	Description   string
	InterestRate  decimal.Decimal // annual percent
	MinAmount     decimal.Decimal
	MaxAmount     decimal.Decimal
	MinTermMonths int
	MaxTermMonths int
	Requirements  []string
	ApprovalRate  decimal.Decimal // percent
}
