// Package recorder keeps an append-only log of dashboard submissions
// (investments, subscriptions, loan applications and emergency aid requests).
package recorder

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Kind names the page action that produced a submission.
type Kind string

const (
	KindInvestment Kind = "investment"
	KindInsurance  Kind = "insurance"
	KindLoan       Kind = "loan"
	KindAssistance Kind = "assistance"
)

// Submission is one accepted form submission.
type Submission struct {
	ID          string
	Kind        Kind
	UserID      string
	ReferenceID string // project, plan or loan type id, or the aid region
	Amount      decimal.Decimal
	Detail      json.RawMessage
	CreatedAt   time.Time
}

// Recorder persists submissions.
type Recorder interface {
	Record(ctx context.Context, s Submission) error
	// List returns the user's most recent submissions, newest first.
	// A non-positive limit applies the implementation default.
	List(ctx context.Context, userID string, limit int) ([]Submission, error)
	Close() error
}
