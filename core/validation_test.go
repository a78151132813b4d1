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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validDocument() *NewsletterDocument {
	text := "The trust INSET day takes place on Friday 20 March 2026."
	return &NewsletterDocument{
		MATID:       "west",
		SourceURL:   "https://west.example.org/n/12",
		ContentHash: HashContent(text),
		Title:       "Issue 12",
		Text:        text,
		FetchedAt:   time.Now().Add(-time.Minute),
	}
}

func TestValidateNewsletterDocument(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateNewsletterDocument(validDocument()))
	})

	t.Run("nil", func(t *testing.T) {
		assert.ErrorIs(t, ValidateNewsletterDocument(nil), ErrInvalidDocument)
	})

	t.Run("empty mat", func(t *testing.T) {
		doc := validDocument()
		doc.MATID = ""
		err := ValidateNewsletterDocument(doc)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.ErrorIs(t, err, ErrEmptyMATID)
	})

	t.Run("empty url", func(t *testing.T) {
		doc := validDocument()
		doc.SourceURL = ""
		assert.ErrorIs(t, ValidateNewsletterDocument(doc), ErrEmptySourceURL)
	})

	t.Run("empty text", func(t *testing.T) {
		doc := validDocument()
		doc.Text = ""
		assert.ErrorIs(t, ValidateNewsletterDocument(doc), ErrEmptyText)
	})

	t.Run("empty content hash", func(t *testing.T) {
		doc := validDocument()
		doc.ContentHash = ""
		assert.ErrorIs(t, ValidateNewsletterDocument(doc), ErrEmptyContentHash)
	})

	t.Run("future fetch time", func(t *testing.T) {
		doc := validDocument()
		doc.FetchedAt = time.Now().Add(time.Hour)
		assert.ErrorIs(t, ValidateNewsletterDocument(doc), ErrInvalidTimestamp)
	})
}

func TestValidateSourcePage(t *testing.T) {
	valid := func() *SourcePage {
		return &SourcePage{
			MATID:            "west",
			URL:              "https://west.example.org/n/12",
			LastFetchAttempt: time.Now().Add(-time.Minute),
			LastStatus:       FetchStatusOK,
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateSourcePage(valid()))
	})

	t.Run("nil", func(t *testing.T) {
		assert.ErrorIs(t, ValidateSourcePage(nil), ErrInvalidSourcePage)
	})

	t.Run("empty mat", func(t *testing.T) {
		page := valid()
		page.MATID = ""
		assert.ErrorIs(t, ValidateSourcePage(page), ErrEmptyMATID)
	})

	t.Run("empty url", func(t *testing.T) {
		page := valid()
		page.URL = ""
		assert.ErrorIs(t, ValidateSourcePage(page), ErrEmptySourceURL)
	})

	t.Run("invalid status", func(t *testing.T) {
		page := valid()
		page.LastStatus = 0
		assert.ErrorIs(t, ValidateSourcePage(page), ErrInvalidFetchStatus)
	})
}

func TestValidateFetchStatus(t *testing.T) {
	assert.NoError(t, ValidateFetchStatus(FetchStatusOK))
	assert.NoError(t, ValidateFetchStatus(FetchStatusFailed))
	assert.NoError(t, ValidateFetchStatus(FetchStatusUnusable))
	assert.ErrorIs(t, ValidateFetchStatus(FetchStatus(99)), ErrInvalidFetchStatus)
}
