package finance

import "github.com/shopspring/decimal"

// ImpactUnit is the amount invested per person helped.
var ImpactUnit = decimal.NewFromInt(100)

// InvestmentEstimate is the projected outcome of an investment.
type InvestmentEstimate struct {
	Amount       decimal.Decimal
	ExpectedROI  decimal.Decimal
	Return       decimal.Decimal
	PeopleHelped int64
}

// InvestmentReturn projects amount × roiPct/100 and the people-helped proxy,
// floor(amount / 100).
func InvestmentReturn(amount, roiPct decimal.Decimal) InvestmentEstimate {
	return InvestmentEstimate{
		Amount:       amount,
		ExpectedROI:  roiPct,
		Return:       cents(amount.Mul(roiPct).Div(hundred)),
		PeopleHelped: PeopleHelped(amount),
	}
}

// PeopleHelped is floor(amount / ImpactUnit).
func PeopleHelped(amount decimal.Decimal) int64 {
	return amount.Div(ImpactUnit).Floor().IntPart()
}

// FundingProgress is raised as a percentage of goal, rounded to two places.
// A non-positive goal reports zero.
func FundingProgress(raised, goal decimal.Decimal) decimal.Decimal {
	if !goal.IsPositive() {
		return decimal.Zero
	}
	return raised.Div(goal).Mul(hundred).Round(2)
}
