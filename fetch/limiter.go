package fetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// DomainLimiters is a registry of per-domain token buckets. All URLs of one
// host share a limiter; requests beyond the bucket's capacity wait rather
// than fail. The registry is the only synchronization point shared across
// fetch workers.
type DomainLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewDomainLimiters creates a registry where each domain is allowed rps
// requests per second with the given burst capacity.
func NewDomainLimiters(rps float64, burst int) *DomainLimiters {
	if rps <= 0 {
		rps = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &DomainLimiters{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Wait blocks until the domain's bucket grants a token or the context is
// cancelled. Every request, including each retry, consumes its own token.
func (d *DomainLimiters) Wait(ctx context.Context, host string) error {
	return d.limiter(host).Wait(ctx)
}

func (d *DomainLimiters) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters[host]
	if !ok {
		l = rate.NewLimiter(d.rps, d.burst)
		d.limiters[host] = l
	}
	return l
}
