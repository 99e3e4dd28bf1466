package generator

import "time"

// Config drives the synthetic history generator.
type Config struct {
	NumTransactions  int
	NumNotifications int
	Seed             int64
	Start            time.Time
	Span             time.Duration
}

// DefaultConfig returns a quarter of activity starting at the beginning of 2024.
func DefaultConfig() Config {
	return Config{
		NumTransactions:  250,
		NumNotifications: 40,
		Seed:             42,
		Start:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Span:             90 * 24 * time.Hour,
	}
}
