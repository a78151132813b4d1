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
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrPermanent indicates a fetch failure that will not be retried:
	// a malformed URL or a non-retryable HTTP status.
	ErrPermanent = errors.New("permanent fetch failure")

	// ErrRetriesExhausted indicates a transient failure that persisted
	// through the configured maximum attempt count.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrSourcePageRepositoryRequired is returned when a source page
	// repository is not provided.
	ErrSourcePageRepositoryRequired = errors.New("source page repository required")

	// ErrDomainLimitersRequired is returned when a domain limiter registry
	// is not provided.
	ErrDomainLimitersRequired = errors.New("domain limiters required")
)

// statusError carries a non-2xx HTTP status through the retry loop.
type statusError struct {
	code       int
	status     string
	retryAfter string // raw Retry-After header, empty if absent
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.status)
}

// transientStatus reports whether an HTTP status code should be retried.
// 5xx and 429 are transient; every other non-2xx status is permanent.
func transientStatus(code int) bool {
	if code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}
