package recorder

import "context"

// NoopRecorder is used when no SQLite path is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(context.Context, Submission) error { return nil }
func (n *NoopRecorder) Close() error                             { return nil }

// List always returns an empty log.
func (n *NoopRecorder) List(context.Context, string, int) ([]Submission, error) {
	return nil, nil
}
