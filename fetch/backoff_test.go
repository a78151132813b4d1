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
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffDelaysNonDecreasing(t *testing.T) {
	for _, seed := range []int64{1, 42, 1234567, 987654321} {
		schedule := newBackoffSchedule(time.Second, seed)

		prev := time.Duration(0)
		for attempt := 1; attempt <= 8; attempt++ {
			delay := schedule.delayFor(attempt, 0)
			require.GreaterOrEqual(t, delay, prev,
				"seed %d attempt %d: delay must not shrink", seed, attempt)
			prev = delay
		}
	}
}

func TestBackoffDelayBounds(t *testing.T) {
	schedule := newBackoffSchedule(time.Second, 7)

	for attempt := 1; attempt <= 6; attempt++ {
		base := time.Second << (attempt - 1)
		delay := schedule.delayFor(attempt, 0)

		assert.GreaterOrEqual(t, delay, base)
		assert.LessOrEqual(t, delay, base+base/2)
	}
}

func TestBackoffHonorsServerMinimum(t *testing.T) {
	schedule := newBackoffSchedule(time.Second, 7)

	delay := schedule.delayFor(1, 30*time.Second)
	assert.GreaterOrEqual(t, delay, 30*time.Second)
}

func TestRetryAfterDelay(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("delta seconds", func(t *testing.T) {
		assert.Equal(t, 7*time.Second, retryAfterDelay("7", now))
	})

	t.Run("http date", func(t *testing.T) {
		at := now.Add(90 * time.Second)
		assert.Equal(t, 90*time.Second, retryAfterDelay(at.Format(http.TimeFormat), now))
	})

	t.Run("date in the past", func(t *testing.T) {
		at := now.Add(-time.Minute)
		assert.Equal(t, time.Duration(0), retryAfterDelay(at.Format(http.TimeFormat), now))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), retryAfterDelay("", now))
	})

	t.Run("garbage", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), retryAfterDelay("soon", now))
	})

	t.Run("negative seconds", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), retryAfterDelay("-3", now))
	})
}
