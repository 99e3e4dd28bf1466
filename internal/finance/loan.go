package finance

import "github.com/shopspring/decimal"

// LoanQuote is the amortisation summary of a fixed-rate loan.
type LoanQuote struct {
	Principal      decimal.Decimal
	AnnualRate     decimal.Decimal
	TermMonths     int
	MonthlyPayment decimal.Decimal // rounded to cents
	TotalPayment   decimal.Decimal // rounded to cents
	TotalInterest  decimal.Decimal // rounded to cents
	Exact          decimal.Decimal // unrounded monthly payment
}

// LoanPayment computes the level monthly payment P·r(1+r)^n / ((1+r)^n − 1)
// with r = annualRatePct/100/12. A zero rate splits the principal evenly.
func LoanPayment(principal, annualRatePct decimal.Decimal, termMonths int) (LoanQuote, error) {
	if termMonths <= 0 {
		return LoanQuote{}, ErrInvalidTerm
	}
	if principal.IsNegative() || annualRatePct.IsNegative() {
		return LoanQuote{}, ErrNegativeAmount
	}

	n := decimal.NewFromInt(int64(termMonths))
	var payment decimal.Decimal
	if annualRatePct.IsZero() {
		payment = principal.Div(n)
	} else {
		r := annualRatePct.Div(hundred).Div(twelve)
		growth := decimal.NewFromInt(1).Add(r).Pow(n)
		payment = principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	}

	total := cents(payment.Mul(n))
	return LoanQuote{
		Principal:      principal,
		AnnualRate:     annualRatePct,
		TermMonths:     termMonths,
		MonthlyPayment: cents(payment),
		TotalPayment:   total,
		TotalInterest:  total.Sub(cents(principal)),
		Exact:          payment,
	}, nil
}
