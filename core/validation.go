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


package core

import (
	"fmt"
	"time"
)

// ValidateNewsletterDocument validates a NewsletterDocument according to
// domain rules.
//
// Validation rules:
//   - MATID, SourceURL, Text and ContentHash must not be empty
//   - FetchedAt must not be in the future
//
// NOT validated (populated by storage):
//   - Id (derived from the identity triple on insert)
//   - InsertedAt (set on insert)
func ValidateNewsletterDocument(doc *NewsletterDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.MATID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyMATID)
	}

	if doc.SourceURL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptySourceURL)
	}

	if doc.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyText)
	}

	if doc.ContentHash == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContentHash)
	}

	if !IsValidTimestamp(doc.FetchedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSourcePage validates a SourcePage according to domain rules.
//
// Validation rules:
//   - MATID and URL must not be empty
//   - LastStatus must be a valid FetchStatus
func ValidateSourcePage(page *SourcePage) error {
	if page == nil {
		return fmt.Errorf("%w: page is nil", ErrInvalidSourcePage)
	}

	if page.MATID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSourcePage, ErrEmptyMATID)
	}

	if page.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSourcePage, ErrEmptySourceURL)
	}

	if err := ValidateFetchStatus(page.LastStatus); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSourcePage, err)
	}

	return nil
}

// ValidateFetchStatus validates that a FetchStatus has a valid value.
func ValidateFetchStatus(status FetchStatus) error {
	switch status {
	case FetchStatusOK, FetchStatusFailed, FetchStatusUnusable:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidFetchStatus, status)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
