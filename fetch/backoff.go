package fetch

import (
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// backoffSchedule computes retry delays: exponential growth from a base
// delay with bounded jitter. The jitter is capped at half the undithered
// delay, so successive delays are non-decreasing even in the worst case.
type backoffSchedule struct {
	base time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func newBackoffSchedule(base time.Duration, seed int64) *backoffSchedule {
	if base <= 0 {
		base = time.Second
	}
	return &backoffSchedule{
		base: base,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// delayFor returns the delay to wait before the given retry attempt
// (attempt 1 is the wait before the second try). The delay never falls
// below minimum, which carries a server-supplied Retry-After.
func (s *backoffSchedule) delayFor(attempt int, minimum time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := s.base
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	s.mu.Lock()
	jitter := time.Duration(s.rng.Int63n(int64(delay)/2 + 1))
	s.mu.Unlock()
	delay += jitter

	if delay < minimum {
		delay = minimum
	}
	return delay
}

// retryAfterDelay parses a Retry-After header value: either delta-seconds
// or an HTTP date. Returns zero for absent or unparseable values.
func retryAfterDelay(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		d := at.Sub(now)
		if d < 0 {
			return 0
		}
		return d
	}
	return 0
}
