package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder writes submissions to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *slog.Logger
}

// NewSQLiteRecorder opens (or creates) the database at dbPath and migrates it.
func NewSQLiteRecorder(dbPath string, logger *slog.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id           TEXT PRIMARY KEY,
			created_at   INTEGER NOT NULL,
			kind         TEXT NOT NULL,
			user_id      TEXT NOT NULL,
			reference_id TEXT,
			amount       TEXT NOT NULL,
			detail       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_user ON submissions(user_id, created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Record inserts s. Amounts are stored as decimal text.
func (r *SQLiteRecorder) Record(ctx context.Context, s Submission) error {
	if s.ID == "" {
		return errors.New("submission id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var detail any
	if len(s.Detail) > 0 {
		detail = string(s.Detail)
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO submissions
		(id, created_at, kind, user_id, reference_id, amount, detail)
		VALUES (?,?,?,?,?,?,?)`,
		s.ID, s.CreatedAt.UnixMilli(), string(s.Kind), s.UserID, s.ReferenceID,
		s.Amount.String(), detail,
	)
	if err != nil {
		return fmt.Errorf("insert submission %s: %w", s.ID, err)
	}
	return nil
}

// List returns the user's most recent submissions, newest first, at most 50
// unless limit says otherwise.
func (r *SQLiteRecorder) List(ctx context.Context, userID string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `SELECT id, created_at, kind, user_id, reference_id, amount, detail
		FROM submissions WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			s       Submission
			created int64
			kind    string
			ref     sql.NullString
			amount  string
			detail  sql.NullString
		)
		if err := rows.Scan(&s.ID, &created, &kind, &s.UserID, &ref, &amount, &detail); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		s.CreatedAt = time.UnixMilli(created).UTC()
		s.Kind = Kind(kind)
		s.ReferenceID = ref.String
		if s.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("submission %s amount: %w", s.ID, err)
		}
		if detail.Valid {
			s.Detail = json.RawMessage(detail.String)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
