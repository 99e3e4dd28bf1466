package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/recorder"
)

const maxSubmissionLimit = 100

// TransactionFilter narrows the transaction history. Empty fields match all.
type TransactionFilter struct {
	Type   string
	Status string
}

// ListTransactions returns the matching transactions, newest first.
func (d *Dashboard) ListTransactions(_ context.Context, filter TransactionFilter) ([]domain.Transaction, error) {
	var (
		txType domain.TransactionType
		status domain.TransactionStatus
		err    error
	)
	if t := strings.TrimSpace(filter.Type); t != "" {
		if txType, err = domain.ParseTransactionType(t); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if s := strings.TrimSpace(filter.Status); s != "" {
		if status, err = domain.ParseTransactionStatus(s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	d.mu.Lock()
	out := make([]domain.Transaction, 0, len(d.transactions))
	for _, tx := range d.transactions {
		if txType != "" && tx.Type != txType {
			continue
		}
		if status != "" && tx.Status != status {
			continue
		}
		out = append(out, tx)
	}
	d.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Notifications returns the header bell entries, newest first, and the unread count.
func (d *Dashboard) Notifications(context.Context) ([]domain.Notification, int) {
	d.mu.Lock()
	out := append([]domain.Notification(nil), d.notifications...)
	d.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	unread := 0
	for _, n := range out {
		if !n.Read {
			unread++
		}
	}
	return out, unread
}

// MarkNotificationRead flags one notification as read.
func (d *Dashboard) MarkNotificationRead(_ context.Context, id string) (domain.Notification, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.notifications {
		if d.notifications[i].ID == id {
			d.notifications[i].Read = true
			return d.notifications[i], nil
		}
	}
	return domain.Notification{}, fmt.Errorf("notification %s: %w", id, ErrNotFound)
}

// MarkAllNotificationsRead flags every notification as read and reports how
// many changed.
func (d *Dashboard) MarkAllNotificationsRead(context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	changed := 0
	for i := range d.notifications {
		if !d.notifications[i].Read {
			d.notifications[i].Read = true
			changed++
		}
	}
	return changed
}

func (d *Dashboard) unreadCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	unread := 0
	for _, n := range d.notifications {
		if !n.Read {
			unread++
		}
	}
	return unread
}

// Submissions returns the user's recorded form submissions, newest first.
func (d *Dashboard) Submissions(ctx context.Context, user domain.User, limit int) ([]recorder.Submission, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if limit > maxSubmissionLimit {
		limit = maxSubmissionLimit
	}
	subs, err := d.recorder.List(ctx, user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}
