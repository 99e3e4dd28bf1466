package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/catalog"
	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/recorder"
	"github.com/vanshika/aquafund/internal/simulate"
)

var (
	// ErrNotFound is returned when a project, plan, loan type or notification id is unknown.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for malformed or non-positive form values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfRange is returned when a loan amount or term falls outside the product range.
	ErrOutOfRange = errors.New("out of range")
)

// SubmissionCounter observes accepted submissions by kind.
type SubmissionCounter interface {
	IncSubmission(kind string)
}

// Options configures a Dashboard.
type Options struct {
	Projects ProjectSource
	Recorder recorder.Recorder
	Counter  SubmissionCounter
	Latency  time.Duration
	Logger   *slog.Logger
}

// Dashboard serves the page-level operations of the dashboard. Notifications,
// transactions and the emergency pool are process-wide mutable state seeded
// from the fixture catalog.
type Dashboard struct {
	catalog  *catalog.Catalog
	projects ProjectSource
	recorder recorder.Recorder
	counter  SubmissionCounter
	delay    simulate.Delay
	logger   *slog.Logger
	nowFn    func() time.Time
	newID    func() string

	mu            sync.Mutex
	notifications []domain.Notification
	transactions  []domain.Transaction
	pool          domain.EmergencyPool
}

// NewDashboard constructs a Dashboard over the fixture catalog. Projects fall
// back to the catalog's own list when opts.Projects is nil.
func NewDashboard(cat *catalog.Catalog, opts Options) *Dashboard {
	if opts.Projects == nil {
		opts.Projects = NewFixtureProjects(cat.Projects)
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Dashboard{
		catalog:       cat,
		projects:      opts.Projects,
		recorder:      opts.Recorder,
		counter:       opts.Counter,
		delay:         simulate.Delay(opts.Latency),
		logger:        opts.Logger.With("component", "dashboard"),
		nowFn:         time.Now,
		newID:         uuid.NewString,
		notifications: append([]domain.Notification(nil), cat.Notifications...),
		transactions:  append([]domain.Transaction(nil), cat.Transactions...),
		pool:          cat.EmergencyPool,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (d *Dashboard) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		d.nowFn = nowFn
	}
}

// submit runs the shared tail of every form submission: detail encoding,
// the artificial delay, the recorder write, the success notification and,
// when tx is non-nil, a new wallet transaction.
func (d *Dashboard) submit(ctx context.Context, sub recorder.Submission, detail any, message string, tx *domain.Transaction) (recorder.Submission, domain.Notification, error) {
	raw, err := json.Marshal(detail)
	if err != nil {
		return recorder.Submission{}, domain.Notification{}, fmt.Errorf("encode %s detail: %w", sub.Kind, err)
	}
	sub.Detail = raw

	if err := d.delay.Wait(ctx); err != nil {
		return recorder.Submission{}, domain.Notification{}, err
	}

	now := d.nowFn().UTC()
	sub.ID = d.newID()
	sub.CreatedAt = now
	if err := d.recorder.Record(ctx, sub); err != nil {
		return recorder.Submission{}, domain.Notification{}, fmt.Errorf("record %s submission: %w", sub.Kind, err)
	}
	if d.counter != nil {
		d.counter.IncSubmission(string(sub.Kind))
	}

	n := domain.Notification{
		ID:      "ntf-" + sub.ID,
		Type:    domain.NotifySuccess,
		Message: message,
		Date:    now,
	}

	d.mu.Lock()
	d.notifications = append([]domain.Notification{n}, d.notifications...)
	if tx != nil {
		tx.ID = "txn-" + sub.ID
		tx.Date = now
		d.transactions = append(d.transactions, *tx)
	}
	d.mu.Unlock()

	d.logger.Info("submission accepted",
		"kind", sub.Kind,
		"submission_id", sub.ID,
		"reference_id", sub.ReferenceID,
		"amount", sub.Amount.String(),
	)
	return sub, n, nil
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidInput, field)
	}
	return nil
}

// PaginationMeta captures pagination metadata returned to API clients.
type PaginationMeta struct {
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// pageBounds returns the slice bounds of page within total items. Pages past
// the end, including ones whose offset would overflow, yield an empty range.
func pageBounds(page, pageSize, total int) (int, int) {
	if pageSize <= 0 || page <= 0 {
		return total, total
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	if page > pages {
		return total, total
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

func buildPaginationMeta(page, pageSize int, total int64) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
		if total > 0 && totalPages == 0 {
			totalPages = 1
		}
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
