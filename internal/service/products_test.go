package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/finance"
	"github.com/vanshika/aquafund/internal/recorder"
)

func TestQuoteInsurance(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	ctx := context.Background()

	q, err := d.QuoteInsurance(ctx, "ins-2", 12, "annual")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !q.Total.Equal(decimal.RequireFromString("539.89")) {
		t.Fatalf("expected 539.89, got %s", q.Total)
	}

	q, err = d.QuoteInsurance(ctx, "ins-2", 12, "")
	if err != nil || !q.Total.Equal(decimal.RequireFromString("599.88")) || q.Frequency != finance.Monthly {
		t.Fatalf("expected monthly 599.88, got %+v (%v)", q, err)
	}

	if _, err := d.QuoteInsurance(ctx, "ins-2", 12, "weekly"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for frequency, got %v", err)
	}
	if _, err := d.QuoteInsurance(ctx, "ins-2", 0, "monthly"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for months, got %v", err)
	}
	if _, err := d.QuoteInsurance(ctx, "ins-9", 12, "monthly"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubscribe(t *testing.T) {
	d, rec, _ := newTestDashboard(t)

	receipt, err := d.Subscribe(context.Background(), demoUser(), "ins-1", 6, "monthly")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !receipt.Quote.Total.Equal(decimal.RequireFromString("179.94")) {
		t.Fatalf("unexpected total %s", receipt.Quote.Total)
	}
	if len(rec.subs) != 1 || rec.subs[0].Kind != recorder.KindInsurance || !rec.subs[0].Amount.Equal(receipt.Quote.Total) {
		t.Fatalf("unexpected submissions %+v", rec.subs)
	}
}

func TestQuoteLoan(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	ctx := context.Background()

	q, err := d.QuoteLoan(ctx, "loan-1", decimal.NewFromInt(5000), 12)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !q.MonthlyPayment.Equal(decimal.RequireFromString("426.89")) {
		t.Fatalf("expected 426.89 monthly, got %s", q.MonthlyPayment)
	}

	cases := []struct {
		name   string
		amount decimal.Decimal
		months int
		want   error
	}{
		{"below minimum", decimal.NewFromInt(500), 12, ErrOutOfRange},
		{"above maximum", decimal.NewFromInt(10001), 12, ErrOutOfRange},
		{"term too short", decimal.NewFromInt(5000), 3, ErrOutOfRange},
		{"term too long", decimal.NewFromInt(5000), 25, ErrOutOfRange},
		{"zero amount", decimal.Zero, 12, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := d.QuoteLoan(ctx, "loan-1", tc.amount, tc.months); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := d.QuoteLoan(ctx, "loan-9", decimal.NewFromInt(5000), 12); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyLoan(t *testing.T) {
	d, rec, counter := newTestDashboard(t)
	ctx := context.Background()

	app, err := d.ApplyLoan(ctx, demoUser(), "loan-2", decimal.NewFromInt(20000), 24)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !app.ApprovalRate.Equal(decimal.NewFromInt(65)) {
		t.Fatalf("expected approval rate 65, got %s", app.ApprovalRate)
	}
	if len(rec.subs) != 1 || rec.subs[0].Kind != recorder.KindLoan {
		t.Fatalf("unexpected submissions %+v", rec.subs)
	}
	if counter.kinds["loan"] != 1 {
		t.Fatalf("expected loan counter, got %v", counter.kinds)
	}

	txs, _ := d.ListTransactions(ctx, TransactionFilter{})
	if len(txs) != 5 {
		t.Fatalf("expected applications to leave transactions alone, got %d", len(txs))
	}
}
