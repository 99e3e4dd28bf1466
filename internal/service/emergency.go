package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/finance"
	"github.com/vanshika/aquafund/internal/recorder"
)

// MinAssistanceAmount is the smallest amount an aid request may ask for.
var MinAssistanceAmount = decimal.NewFromInt(100)

// EmergencyFundView is the emergency fund page data.
type EmergencyFundView struct {
	Status           finance.PoolStatus
	RegionAllocation []domain.RegionShare
	UsageBreakdown   []domain.UsageShare
}

// AssistanceInput is the emergency assistance form.
type AssistanceInput struct {
	Region  string
	Amount  decimal.Decimal
	Urgency string
	Reason  string
}

// AssistanceReceipt confirms a logged assistance request.
type AssistanceReceipt struct {
	Request      domain.AssistanceRequest
	Status       finance.PoolStatus
	Notification domain.Notification
}

// EmergencyFund returns the pool status and its breakdown charts.
func (d *Dashboard) EmergencyFund(context.Context) EmergencyFundView {
	d.mu.Lock()
	pool := d.pool
	d.mu.Unlock()
	return EmergencyFundView{
		Status:           finance.EmergencyPoolStatus(pool),
		RegionAllocation: append([]domain.RegionShare(nil), pool.RegionAllocation...),
		UsageBreakdown:   append([]domain.UsageShare(nil), pool.UsageBreakdown...),
	}
}

// RequestAssistance logs an emergency aid request for review. The request
// joins the pending tally; no funds move.
func (d *Dashboard) RequestAssistance(ctx context.Context, user domain.User, in AssistanceInput) (AssistanceReceipt, error) {
	region, err := domain.ParseRegion(in.Region)
	if err != nil {
		return AssistanceReceipt{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	urgency, err := domain.ParseUrgency(in.Urgency)
	if err != nil {
		return AssistanceReceipt{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Amount.LessThan(MinAssistanceAmount) {
		return AssistanceReceipt{}, fmt.Errorf("%w: amount must be at least %s", ErrInvalidInput, MinAssistanceAmount)
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return AssistanceReceipt{}, fmt.Errorf("%w: emergency details are required", ErrInvalidInput)
	}

	detail := map[string]any{
		"urgency": string(urgency),
		"reason":  reason,
	}
	sub := recorder.Submission{
		Kind:        recorder.KindAssistance,
		UserID:      user.ID,
		ReferenceID: string(region),
		Amount:      in.Amount,
	}
	msg := fmt.Sprintf("Emergency fund request for %s submitted. It will be reviewed within 48 hours.",
		finance.Format(in.Amount, finance.DefaultCurrency))
	sub, n, err := d.submit(ctx, sub, detail, msg, nil)
	if err != nil {
		return AssistanceReceipt{}, err
	}

	d.mu.Lock()
	d.pool.RequestsPending++
	pool := d.pool
	d.mu.Unlock()

	return AssistanceReceipt{
		Request: domain.AssistanceRequest{
			ID:          sub.ID,
			UserID:      user.ID,
			Region:      region,
			Amount:      in.Amount,
			Urgency:     urgency,
			Reason:      reason,
			SubmittedAt: sub.CreatedAt,
		},
		Status:       finance.EmergencyPoolStatus(pool),
		Notification: n,
	}, nil
}
