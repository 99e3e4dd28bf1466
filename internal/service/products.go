package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/finance"
	"github.com/vanshika/aquafund/internal/recorder"
)

// SubscriptionReceipt confirms an insurance subscription.
type SubscriptionReceipt struct {
	SubmissionID string
	Plan         domain.InsurancePlan
	Quote        finance.InsuranceQuote
	Notification domain.Notification
	SubmittedAt  time.Time
}

// LoanApplication confirms a submitted loan application. ApprovalRate is the
// loan type's historical rate; the application itself is never decided.
type LoanApplication struct {
	SubmissionID string
	LoanType     domain.LoanType
	Quote        finance.LoanQuote
	ApprovalRate decimal.Decimal
	Notification domain.Notification
	SubmittedAt  time.Time
}

// ListInsurancePlans returns the subscribable plans.
func (d *Dashboard) ListInsurancePlans(context.Context) []domain.InsurancePlan {
	return append([]domain.InsurancePlan(nil), d.catalog.InsurancePlans...)
}

// QuoteInsurance prices holding planID for months at the given billing frequency.
func (d *Dashboard) QuoteInsurance(_ context.Context, planID string, months int, frequency string) (finance.InsuranceQuote, error) {
	plan, ok := d.catalog.InsurancePlan(planID)
	if !ok {
		return finance.InsuranceQuote{}, fmt.Errorf("insurance plan %s: %w", planID, ErrNotFound)
	}
	return quoteInsurance(plan, months, frequency)
}

// Subscribe accepts an insurance subscription after the artificial delay.
func (d *Dashboard) Subscribe(ctx context.Context, user domain.User, planID string, months int, frequency string) (SubscriptionReceipt, error) {
	plan, ok := d.catalog.InsurancePlan(planID)
	if !ok {
		return SubscriptionReceipt{}, fmt.Errorf("insurance plan %s: %w", planID, ErrNotFound)
	}
	quote, err := quoteInsurance(plan, months, frequency)
	if err != nil {
		return SubscriptionReceipt{}, err
	}

	detail := map[string]any{
		"months":    quote.Months,
		"frequency": string(quote.Frequency),
		"discount":  quote.Discount.String(),
	}
	sub := recorder.Submission{
		Kind:        recorder.KindInsurance,
		UserID:      user.ID,
		ReferenceID: plan.ID,
		Amount:      quote.Total,
	}
	msg := fmt.Sprintf("Subscribed to %s for %d months", plan.Name, quote.Months)
	tx := &domain.Transaction{
		Type:        domain.TxInsurance,
		Amount:      quote.Total,
		Description: plan.Name,
		Status:      domain.TxCompleted,
	}
	sub, n, err := d.submit(ctx, sub, detail, msg, tx)
	if err != nil {
		return SubscriptionReceipt{}, err
	}

	return SubscriptionReceipt{
		SubmissionID: sub.ID,
		Plan:         plan,
		Quote:        quote,
		Notification: n,
		SubmittedAt:  sub.CreatedAt,
	}, nil
}

func quoteInsurance(plan domain.InsurancePlan, months int, frequency string) (finance.InsuranceQuote, error) {
	freq, err := finance.ParseFrequency(frequency)
	if err != nil {
		return finance.InsuranceQuote{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	quote, err := finance.InsuranceCost(plan.MonthlyPremium, months, freq)
	if err != nil {
		return finance.InsuranceQuote{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return quote, nil
}

// ListLoanTypes returns the loan products.
func (d *Dashboard) ListLoanTypes(context.Context) []domain.LoanType {
	return append([]domain.LoanType(nil), d.catalog.LoanTypes...)
}

// QuoteLoan computes the repayment schedule of borrowing amount over months.
func (d *Dashboard) QuoteLoan(_ context.Context, loanID string, amount decimal.Decimal, months int) (finance.LoanQuote, error) {
	lt, ok := d.catalog.LoanType(loanID)
	if !ok {
		return finance.LoanQuote{}, fmt.Errorf("loan type %s: %w", loanID, ErrNotFound)
	}
	return quoteLoan(lt, amount, months)
}

// ApplyLoan accepts a loan application after the artificial delay.
func (d *Dashboard) ApplyLoan(ctx context.Context, user domain.User, loanID string, amount decimal.Decimal, months int) (LoanApplication, error) {
	lt, ok := d.catalog.LoanType(loanID)
	if !ok {
		return LoanApplication{}, fmt.Errorf("loan type %s: %w", loanID, ErrNotFound)
	}
	quote, err := quoteLoan(lt, amount, months)
	if err != nil {
		return LoanApplication{}, err
	}

	detail := map[string]any{
		"termMonths":     months,
		"interestRate":   lt.InterestRate.String(),
		"monthlyPayment": quote.MonthlyPayment.String(),
	}
	sub := recorder.Submission{
		Kind:        recorder.KindLoan,
		UserID:      user.ID,
		ReferenceID: lt.ID,
		Amount:      amount,
	}
	msg := fmt.Sprintf("%s application for %s submitted", lt.Name, finance.Format(amount, finance.DefaultCurrency))
	sub, n, err := d.submit(ctx, sub, detail, msg, nil)
	if err != nil {
		return LoanApplication{}, err
	}

	return LoanApplication{
		SubmissionID: sub.ID,
		LoanType:     lt,
		Quote:        quote,
		ApprovalRate: lt.ApprovalRate,
		Notification: n,
		SubmittedAt:  sub.CreatedAt,
	}, nil
}

func quoteLoan(lt domain.LoanType, amount decimal.Decimal, months int) (finance.LoanQuote, error) {
	if err := requirePositive("amount", amount); err != nil {
		return finance.LoanQuote{}, err
	}
	if amount.LessThan(lt.MinAmount) || amount.GreaterThan(lt.MaxAmount) {
		return finance.LoanQuote{}, fmt.Errorf("%w: amount %s outside %s-%s", ErrOutOfRange, amount, lt.MinAmount, lt.MaxAmount)
	}
	if months < lt.MinTermMonths || months > lt.MaxTermMonths {
		return finance.LoanQuote{}, fmt.Errorf("%w: term %d outside %d-%d months", ErrOutOfRange, months, lt.MinTermMonths, lt.MaxTermMonths)
	}
	quote, err := finance.LoanPayment(amount, lt.InterestRate, months)
	if errors.Is(err, finance.ErrInvalidTerm) || errors.Is(err, finance.ErrNegativeAmount) {
		return finance.LoanQuote{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return quote, err
}
