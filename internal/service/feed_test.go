package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/recorder"
)

func TestListTransactionsFilters(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	ctx := context.Background()

	all, err := d.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for i := 1; i < len(all); i++ {
		if all[i].Date.After(all[i-1].Date) {
			t.Fatalf("expected newest first at %d", i)
		}
	}

	deps, err := d.ListTransactions(ctx, TransactionFilter{Type: "deposit"})
	if err != nil || len(deps) != 1 {
		t.Fatalf("expected 1 deposit, got %d (%v)", len(deps), err)
	}

	done, err := d.ListTransactions(ctx, TransactionFilter{Type: "Investment", Status: "completed"})
	if err != nil || len(done) != 1 || done[0].ID != "tx-1" {
		t.Fatalf("expected 1 completed investment, got %d (%v)", len(done), err)
	}

	repaid, err := d.ListTransactions(ctx, TransactionFilter{Type: "Loan Repayment"})
	if err != nil || len(repaid) != 1 {
		t.Fatalf("expected 1 loan repayment, got %d (%v)", len(repaid), err)
	}

	if _, err := d.ListTransactions(ctx, TransactionFilter{Status: "lost"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMarkNotifications(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	ctx := context.Background()

	n, err := d.MarkNotificationRead(ctx, "notif-1")
	if err != nil || !n.Read {
		t.Fatalf("expected notification marked read, got %+v (%v)", n, err)
	}
	if _, unread := d.Notifications(ctx); unread != 2 {
		t.Fatalf("expected 2 unread, got %d", unread)
	}
	if _, err := d.MarkNotificationRead(ctx, "notif-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if changed := d.MarkAllNotificationsRead(ctx); changed != 2 {
		t.Fatalf("expected 2 changed, got %d", changed)
	}
	if changed := d.MarkAllNotificationsRead(ctx); changed != 0 {
		t.Fatalf("expected idempotent mark-all, got %d", changed)
	}
}

func TestNotificationsDoNotLeakState(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	notes, _ := d.Notifications(context.Background())
	notes[0].Read = false
	notes[0].Message = "mutated"

	again, _ := d.Notifications(context.Background())
	if again[0].Message == "mutated" {
		t.Fatal("expected Notifications to return a copy")
	}
}

func TestEmergencyFundPool(t *testing.T) {
	d, _, _ := newTestDashboard(t)

	view := d.EmergencyFund(context.Background())
	st := view.Status
	if !st.TotalPool.Equal(decimal.NewFromInt(2500000)) || !st.AvailablePercent.Equal(decimal.NewFromInt(74)) {
		t.Fatalf("unexpected pool status %+v", st)
	}
	if st.TotalRequests != 50 || !st.ApprovalRate.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("unexpected request tallies %+v", st)
	}
	if len(view.RegionAllocation) != 4 || view.RegionAllocation[0].Region != "Africa" {
		t.Fatalf("unexpected region allocation %+v", view.RegionAllocation)
	}
	if len(view.UsageBreakdown) != 4 || view.UsageBreakdown[0].Category != "Flood Relief" {
		t.Fatalf("unexpected usage breakdown %+v", view.UsageBreakdown)
	}
}

func TestRequestAssistance(t *testing.T) {
	d, rec, counter := newTestDashboard(t)
	ctx := context.Background()

	receipt, err := d.RequestAssistance(ctx, demoUser(), AssistanceInput{
		Region:  "South America",
		Amount:  decimal.NewFromInt(2500),
		Urgency: "critical",
		Reason:  "  Flooding destroyed the village well  ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	req := receipt.Request
	if req.Region != domain.RegionSouthAmerica || req.Urgency != domain.UrgencyCritical {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Reason != "Flooding destroyed the village well" || !req.SubmittedAt.Equal(fixedNow) {
		t.Fatalf("unexpected request %+v", req)
	}
	if receipt.Status.RequestsPending != 16 || receipt.Status.TotalRequests != 51 {
		t.Fatalf("expected the request to join the pending tally, got %+v", receipt.Status)
	}
	if !receipt.Status.AvailableFunds.Equal(decimal.NewFromInt(1850000)) {
		t.Fatalf("expected available funds untouched, got %s", receipt.Status.AvailableFunds)
	}

	if len(rec.subs) != 1 {
		t.Fatalf("expected 1 recorded submission, got %d", len(rec.subs))
	}
	sub := rec.subs[0]
	if sub.Kind != recorder.KindAssistance || sub.ReferenceID != "south-america" || !sub.Amount.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("unexpected submission %+v", sub)
	}
	var detail map[string]string
	if err := json.Unmarshal(sub.Detail, &detail); err != nil || detail["urgency"] != "critical" {
		t.Fatalf("unexpected detail %s (%v)", sub.Detail, err)
	}
	if counter.kinds["assistance"] != 1 {
		t.Fatalf("expected assistance counter, got %v", counter.kinds)
	}

	txs, _ := d.ListTransactions(ctx, TransactionFilter{})
	if len(txs) != 5 {
		t.Fatalf("expected requests to leave transactions alone, got %d", len(txs))
	}
	if got := d.EmergencyFund(ctx).Status.RequestsPending; got != 16 {
		t.Fatalf("expected pending tally to persist, got %d", got)
	}
}

func TestRequestAssistanceDefaultsUrgency(t *testing.T) {
	d, _, _ := newTestDashboard(t)

	receipt, err := d.RequestAssistance(context.Background(), demoUser(), AssistanceInput{
		Region: "africa",
		Amount: decimal.NewFromInt(100),
		Reason: "Borehole repair",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if receipt.Request.Urgency != domain.DefaultUrgency {
		t.Fatalf("expected default urgency, got %q", receipt.Request.Urgency)
	}
}

func TestRequestAssistanceValidation(t *testing.T) {
	d, rec, _ := newTestDashboard(t)
	ctx := context.Background()

	valid := AssistanceInput{Region: "asia", Amount: decimal.NewFromInt(500), Urgency: "high", Reason: "Drought"}
	cases := []struct {
		name   string
		mutate func(*AssistanceInput)
	}{
		{"unknown region", func(in *AssistanceInput) { in.Region = "atlantis" }},
		{"missing region", func(in *AssistanceInput) { in.Region = "" }},
		{"below minimum", func(in *AssistanceInput) { in.Amount = decimal.NewFromInt(99) }},
		{"negative amount", func(in *AssistanceInput) { in.Amount = decimal.NewFromInt(-100) }},
		{"unknown urgency", func(in *AssistanceInput) { in.Urgency = "whenever" }},
		{"blank reason", func(in *AssistanceInput) { in.Reason = "   " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := d.RequestAssistance(ctx, demoUser(), in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
	if len(rec.subs) != 0 {
		t.Fatalf("expected nothing recorded, got %d", len(rec.subs))
	}
	if got := d.EmergencyFund(ctx).Status.RequestsPending; got != 15 {
		t.Fatalf("expected pending tally unchanged, got %d", got)
	}
}

func TestSubmissionsListsUserHistory(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	ctx := context.Background()
	user := demoUser()

	if _, err := d.Invest(ctx, user, "inv-1", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("invest: %v", err)
	}
	if _, err := d.RequestAssistance(ctx, user, AssistanceInput{Region: "europe", Amount: decimal.NewFromInt(300), Reason: "Storm"}); err != nil {
		t.Fatalf("request assistance: %v", err)
	}
	if _, err := d.Invest(ctx, domain.User{ID: "user-2"}, "inv-2", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("invest: %v", err)
	}

	subs, err := d.Submissions(ctx, user, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(subs) != 2 || subs[0].Kind != recorder.KindAssistance || subs[1].Kind != recorder.KindInvestment {
		t.Fatalf("unexpected submissions %+v", subs)
	}

	subs, err = d.Submissions(ctx, user, 1)
	if err != nil || len(subs) != 1 {
		t.Fatalf("expected limit to apply, got %d (%v)", len(subs), err)
	}
	if _, err := d.Submissions(ctx, user, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProfileFallsBackToCatalogUser(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	if got := d.Profile(context.Background(), domain.User{}); got.ID != "user-1" {
		t.Fatalf("expected demo user, got %q", got.ID)
	}
}
