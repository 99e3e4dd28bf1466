package finance

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLoanPaymentExample(t *testing.T) {
	q, err := LoanPayment(d("5000"), d("4.5"), 12)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !q.MonthlyPayment.Equal(d("426.89")) {
		t.Fatalf("expected monthly payment 426.89, got %s", q.MonthlyPayment)
	}
	if !q.TotalPayment.Equal(d("5122.71")) {
		t.Fatalf("expected total 5122.71, got %s", q.TotalPayment)
	}
	if !q.TotalInterest.Equal(d("122.71")) {
		t.Fatalf("expected interest 122.71, got %s", q.TotalInterest)
	}
}

func TestLoanPaymentNeverCheaperThanPrincipal(t *testing.T) {
	principals := []string{"1", "250.50", "5000", "120000"}
	rates := []string{"0.1", "3.25", "4.5", "12", "29.99"}
	terms := []int{1, 6, 12, 60, 360}
	for _, p := range principals {
		for _, r := range rates {
			for _, n := range terms {
				q, err := LoanPayment(d(p), d(r), n)
				if err != nil {
					t.Fatalf("LoanPayment(%s, %s, %d): %v", p, r, n, err)
				}
				if q.Exact.Mul(decimal.NewFromInt(int64(n))).LessThan(d(p)) {
					t.Errorf("payment %s × %d < principal %s at %s%%", q.Exact, n, p, r)
				}
			}
		}
	}
}

func TestLoanPaymentZeroRate(t *testing.T) {
	q, err := LoanPayment(d("1200"), decimal.Zero, 12)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !q.MonthlyPayment.Equal(d("100")) {
		t.Fatalf("expected even split of 100, got %s", q.MonthlyPayment)
	}
	if !q.TotalInterest.IsZero() {
		t.Fatalf("expected no interest, got %s", q.TotalInterest)
	}
}

func TestLoanPaymentRejectsBadInput(t *testing.T) {
	if _, err := LoanPayment(d("1000"), d("5"), 0); !errors.Is(err, ErrInvalidTerm) {
		t.Fatalf("expected ErrInvalidTerm, got %v", err)
	}
	if _, err := LoanPayment(d("-1000"), d("5"), 12); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestInsuranceCost(t *testing.T) {
	annual, err := InsuranceCost(d("49.99"), 12, Annual)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !annual.Total.Equal(d("539.89")) {
		t.Fatalf("expected 539.89, got %s", annual.Total)
	}
	monthly, err := InsuranceCost(d("49.99"), 12, Monthly)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !monthly.Total.Equal(d("599.88")) {
		t.Fatalf("expected 599.88, got %s", monthly.Total)
	}
	if !monthly.Discount.IsZero() {
		t.Fatalf("expected no discount on monthly billing, got %s", monthly.Discount)
	}
	if annual.Total.GreaterThan(monthly.Total) {
		t.Fatalf("annual %s should not exceed monthly %s", annual.Total, monthly.Total)
	}
	if _, err := InsuranceCost(d("10"), 0, Monthly); !errors.Is(err, ErrInvalidTerm) {
		t.Fatalf("expected ErrInvalidTerm, got %v", err)
	}
}

func TestAnnualNeverExceedsMonthly(t *testing.T) {
	for _, premium := range []string{"0.01", "9.99", "49.99", "120"} {
		for months := 1; months <= 36; months++ {
			a, _ := InsuranceCost(d(premium), months, Annual)
			m, _ := InsuranceCost(d(premium), months, Monthly)
			if a.Total.GreaterThan(m.Total) {
				t.Fatalf("premium %s months %d: annual %s > monthly %s", premium, months, a.Total, m.Total)
			}
		}
	}
}

func TestParseFrequency(t *testing.T) {
	if f, err := ParseFrequency("Yearly"); err != nil || f != Annual {
		t.Fatalf("expected annual, got %q (%v)", f, err)
	}
	if f, err := ParseFrequency(""); err != nil || f != Monthly {
		t.Fatalf("expected monthly default, got %q (%v)", f, err)
	}
	if _, err := ParseFrequency("weekly"); !errors.Is(err, ErrUnknownFrequency) {
		t.Fatalf("expected ErrUnknownFrequency, got %v", err)
	}
}

func TestInvestmentReturn(t *testing.T) {
	est := InvestmentReturn(d("2550"), d("8.5"))
	if !est.Return.Equal(d("216.75")) {
		t.Fatalf("expected return 216.75, got %s", est.Return)
	}
	if est.PeopleHelped != 25 {
		t.Fatalf("expected 25 people helped, got %d", est.PeopleHelped)
	}
	if got := PeopleHelped(d("99.99")); got != 0 {
		t.Fatalf("expected 0 people helped below one unit, got %d", got)
	}
}

func TestFundingProgress(t *testing.T) {
	if got := FundingProgress(d("375000"), d("500000")); !got.Equal(d("75")) {
		t.Fatalf("expected 75, got %s", got)
	}
	if got := FundingProgress(d("10"), decimal.Zero); !got.IsZero() {
		t.Fatalf("expected 0 for zero goal, got %s", got)
	}
	if got := FundingProgress(d("600"), d("500")); !got.Equal(d("120")) {
		t.Fatalf("expected overfunded 120, got %s", got)
	}
}

func TestEmergencyPoolStatus(t *testing.T) {
	st := EmergencyPoolStatus(domain.EmergencyPool{
		TotalPool:        d("2500000"),
		AvailableFunds:   d("1850000"),
		AllocatedFunds:   d("650000"),
		RequestsPending:  15,
		RequestsApproved: 28,
		RequestsDeclined: 7,
	})
	if !st.AvailablePercent.Equal(d("74")) {
		t.Fatalf("expected 74%% available, got %s", st.AvailablePercent)
	}
	if !st.AllocatedPercent.Equal(d("26")) {
		t.Fatalf("expected 26%% allocated, got %s", st.AllocatedPercent)
	}
	if st.TotalRequests != 50 {
		t.Fatalf("expected 50 requests, got %d", st.TotalRequests)
	}
	if !st.ApprovalRate.Equal(d("80")) {
		t.Fatalf("expected 80%% approval, got %s", st.ApprovalRate)
	}

	empty := EmergencyPoolStatus(domain.EmergencyPool{})
	if !empty.AvailablePercent.IsZero() || !empty.ApprovalRate.IsZero() {
		t.Fatalf("expected zeros for an empty pool, got %+v", empty)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(d("1234.5"), "USD"); got != "$1,234.50" {
		t.Fatalf("expected $1,234.50, got %q", got)
	}
	if got := Format(d("426.8926"), "nope"); got != "$426.89" {
		t.Fatalf("expected USD fallback $426.89, got %q", got)
	}
}
