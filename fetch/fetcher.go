// Copyright 2026 Edquery Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/edquery/matnews/core"
	"github.com/edquery/matnews/storage"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
	defaultTimeout     = 30 * time.Second
	defaultUserAgent   = "matnews/1.0 (+https://github.com/edquery/matnews)"

	// maxBodyBytes bounds how much of a newsletter page is read.
	maxBodyBytes = 8 << 20
)

// fetchState drives the retry state machine for one logical fetch.
type fetchState int

const (
	statePending fetchState = iota
	stateWaiting
	stateSucceeded
	stateFailed
)

// Fetcher performs rate-limited HTTP GETs with bounded retry and backoff.
// One Fetch call is one logical fetch: it updates the URL's SourcePage
// exactly once regardless of how many internal retries it makes.
type Fetcher struct {
	client      *http.Client
	limiters    *DomainLimiters
	pages       storage.SourcePageRepository
	schedule    *backoffSchedule
	maxAttempts int
	userAgent   string
	clock       Clock
	logger      *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher) error

// WithMaxAttempts sets the maximum attempt count per logical fetch.
// Default is 3.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) error {
		if n < 1 {
			n = 1
		}
		f.maxAttempts = n
		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Default is one second.
func WithBaseDelay(d time.Duration) Option {
	return func(f *Fetcher) error {
		f.schedule = newBackoffSchedule(d, time.Now().UnixNano())
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) error {
		if client != nil {
			f.client = client
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) error {
		if ua != "" {
			f.userAgent = ua
		}
		return nil
	}
}

// WithClock sets a custom clock. Tests inject a fake clock here to drive
// the backoff state machine without real sleeps.
func WithClock(clock Clock) Option {
	return func(f *Fetcher) error {
		if clock != nil {
			f.clock = clock
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewFetcher creates a rate-limited fetcher. The limiter registry is owned
// by the caller and may be shared with other fetchers.
func NewFetcher(limiters *DomainLimiters, pages storage.SourcePageRepository, opts ...Option) (*Fetcher, error) {
	if limiters == nil {
		return nil, ErrDomainLimitersRequired
	}
	if pages == nil {
		return nil, ErrSourcePageRepositoryRequired
	}

	f := &Fetcher{
		client:      &http.Client{Timeout: defaultTimeout},
		limiters:    limiters,
		pages:       pages,
		schedule:    newBackoffSchedule(defaultBaseDelay, time.Now().UnixNano()),
		maxAttempts: defaultMaxAttempts,
		userAgent:   defaultUserAgent,
		clock:       SystemClock(),
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Fetch performs one logical fetch of a newsletter URL for a MAT. Transient
// failures are retried with exponential backoff and jitter; permanent
// failures surface immediately. The returned error wraps ErrPermanent or
// ErrRetriesExhausted for terminal failures.
func (f *Fetcher) Fetch(ctx context.Context, matID, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		failure := fmt.Errorf("%w: malformed url %q", ErrPermanent, rawURL)
		f.recordOutcome(ctx, matID, rawURL, core.FetchStatusFailed, failure)
		return nil, failure
	}

	var (
		body    []byte
		lastErr error
		state   = statePending
	)

	for attempt := 1; state != stateSucceeded && state != stateFailed; attempt++ {
		if err := ctx.Err(); err != nil {
			f.recordOutcome(ctx, matID, rawURL, core.FetchStatusFailed, err)
			return nil, err
		}

		// Each attempt, retries included, takes its own rate-limit token.
		if err := f.limiters.Wait(ctx, parsed.Host); err != nil {
			f.recordOutcome(ctx, matID, rawURL, core.FetchStatusFailed, err)
			return nil, err
		}

		body, lastErr = f.doGet(ctx, rawURL)
		if lastErr == nil {
			state = stateSucceeded
			break
		}

		if !f.transient(lastErr) {
			lastErr = fmt.Errorf("%w: %w", ErrPermanent, lastErr)
			state = stateFailed
			break
		}

		if attempt >= f.maxAttempts {
			lastErr = fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, f.maxAttempts, lastErr)
			state = stateFailed
			break
		}

		delay := f.schedule.delayFor(attempt, f.serverMinimum(lastErr))
		f.logger.Debug("fetch attempt failed, backing off",
			"url", rawURL,
			"attempt", attempt,
			"delay", delay,
			"err", lastErr)

		state = stateWaiting
		if err := f.clock.Sleep(ctx, delay); err != nil {
			f.recordOutcome(ctx, matID, rawURL, core.FetchStatusFailed, err)
			return nil, err
		}
		state = statePending
	}

	if state == stateFailed {
		f.recordOutcome(ctx, matID, rawURL, core.FetchStatusFailed, lastErr)
		return nil, lastErr
	}

	f.recordOutcome(ctx, matID, rawURL, core.FetchStatusOK, nil)
	return body, nil
}

// doGet performs a single HTTP attempt.
func (f *Fetcher) doGet(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, &statusError{
			code:       resp.StatusCode,
			status:     resp.Status,
			retryAfter: resp.Header.Get("Retry-After"),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// transient reports whether an attempt error should be retried. Network
// errors (timeouts, resets, refused connections) are transient; HTTP status
// errors follow the status taxonomy.
func (f *Fetcher) transient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return transientStatus(se.code)
	}
	// Anything that isn't an HTTP status is a network-level failure.
	return true
}

// serverMinimum extracts a Retry-After floor from a 429 response, if any.
func (f *Fetcher) serverMinimum(err error) time.Duration {
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusTooManyRequests {
		return retryAfterDelay(se.retryAfter, f.clock.Now())
	}
	return 0
}

// recordOutcome upserts the SourcePage once per logical fetch so readers see
// one coherent status per call, never one per retry.
func (f *Fetcher) recordOutcome(ctx context.Context, matID, rawURL string, status core.FetchStatus, failure error) {
	page := &core.SourcePage{
		MATID:            matID,
		URL:              rawURL,
		LastFetchAttempt: f.clock.Now().UTC(),
		LastStatus:       status,
	}
	if failure != nil {
		page.LastError = failure.Error()
	}
	if err := f.pages.Upsert(ctx, page); err != nil {
		f.logger.Error("failed to record fetch outcome", "url", rawURL, "err", err)
	}
}
