package fetch

import (
	"context"
	"time"
)

// Clock abstracts time for the retry loop so backoff behavior can be tested
// without real sleeps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep blocks for the given duration or until the context is
	// cancelled, whichever comes first.
	Sleep(ctx context.Context, d time.Duration) error
}

// systemClock is the production Clock backed by the runtime timer.
type systemClock struct{}

var _ Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SystemClock returns the production clock.
func SystemClock() Clock {
	return systemClock{}
}
