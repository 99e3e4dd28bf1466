// Package simulate provides the artificial latency applied to mocked calls.
package simulate

import (
	"context"
	"time"
)

// Delay is a fixed wait; the zero value returns immediately.
type Delay time.Duration

// Wait blocks for the delay or until ctx is done, whichever is first.
func (d Delay) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
