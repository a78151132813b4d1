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


package retrieval

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edquery/matnews/core"
	"github.com/edquery/matnews/storage"
	badgerstore "github.com/edquery/matnews/storage/badger"
)

func setupIndex(t *testing.T, opts ...Option) (*Index, storage.DocumentRepository) {
	t.Helper()

	docs, pages, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		pages.Close()
		docs.Close()
		backend.Close()
	})

	idx, err := NewIndex(docs, opts...)
	require.NoError(t, err)
	return idx, docs
}

func storeDoc(t *testing.T, docs storage.DocumentRepository, matID, url, title, text string, fetchedAt time.Time) {
	t.Helper()

	doc := &core.NewsletterDocument{
		MATID:       matID,
		SourceURL:   url,
		ContentHash: core.HashContent(text),
		Title:       title,
		Text:        text,
		FetchedAt:   fetchedAt,
	}
	_, err := docs.Put(context.Background(), doc)
	require.NoError(t, err)
}

func TestRetrieveRanksTitleMatchesAboveBodyMatches(t *testing.T) {
	idx, docs := setupIndex(t)
	now := time.Now()

	storeDoc(t, docs, "west", "https://west.example.org/n/1",
		"INSET day arrangements",
		"Details about staff training schedules for all schools.", now)
	storeDoc(t, docs, "west", "https://west.example.org/n/2",
		"Spring term update",
		"A reminder that the INSET day falls on Friday.", now)
	storeDoc(t, docs, "west", "https://west.example.org/n/3",
		"Sports results",
		"Year 6 won the relay again this summer.", now)

	passages, err := idx.Retrieve(context.Background(), "west", "when is the INSET day?", 10)
	require.NoError(t, err)
	require.Len(t, passages, 2)

	assert.Equal(t, "https://west.example.org/n/1", passages[0].Document.SourceURL)
	assert.Equal(t, "https://west.example.org/n/2", passages[1].Document.SourceURL)
	assert.Greater(t, passages[0].Score, passages[1].Score)
}

func TestRetrieveScopedToMAT(t *testing.T) {
	idx, docs := setupIndex(t)
	now := time.Now()

	storeDoc(t, docs, "west", "https://west.example.org/n/1",
		"Uniform policy", "New uniform supplier details for west families.", now)
	storeDoc(t, docs, "north", "https://north.example.org/n/1",
		"Uniform policy", "New uniform supplier details for north families.", now)

	passages, err := idx.Retrieve(context.Background(), "west", "uniform supplier", 10)
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "west", passages[0].Document.MATID)
}

func TestRetrieveDeterministicTieBreaks(t *testing.T) {
	idx, docs := setupIndex(t)

	older := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)

	// Identical titles and equivalent bodies give equal scores; recency
	// must decide.
	storeDoc(t, docs, "west", "https://west.example.org/n/1",
		"Admissions open", "Admissions window details inside issue one.", older)
	storeDoc(t, docs, "west", "https://west.example.org/n/2",
		"Admissions open", "Admissions window details inside issue two.", newer)

	for range 3 {
		passages, err := idx.Retrieve(context.Background(), "west", "admissions window", 10)
		require.NoError(t, err)
		require.Len(t, passages, 2)
		assert.Equal(t, "https://west.example.org/n/2", passages[0].Document.SourceURL)
		assert.Equal(t, "https://west.example.org/n/1", passages[1].Document.SourceURL)
	}
}

func TestRetrieveRespectsK(t *testing.T) {
	idx, docs := setupIndex(t)
	now := time.Now()

	for _, url := range []string{
		"https://west.example.org/n/1",
		"https://west.example.org/n/2",
		"https://west.example.org/n/3",
	} {
		storeDoc(t, docs, "west", url, "Term dates",
			"Term dates for the coming year: "+url, now)
	}

	passages, err := idx.Retrieve(context.Background(), "west", "term dates", 2)
	require.NoError(t, err)
	assert.Len(t, passages, 2)
}

func TestRetrieveMinScore(t *testing.T) {
	idx, docs := setupIndex(t, WithMinScore(0.5))
	now := time.Now()

	// Body-only match scores 1/4 with the default weights; below 0.5.
	storeDoc(t, docs, "west", "https://west.example.org/n/1",
		"Spring update", "The admissions deadline is in January.", now)

	passages, err := idx.Retrieve(context.Background(), "west", "admissions", 10)
	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestRetrieveStopwordOnlyQuery(t *testing.T) {
	idx, docs := setupIndex(t)
	storeDoc(t, docs, "west", "https://west.example.org/n/1",
		"Admissions", "The admissions deadline is in January.", time.Now())

	for _, query := range []string{"the and of", "what is it for", "  "} {
		passages, err := idx.Retrieve(context.Background(), "west", query, 5)
		require.NoError(t, err)
		assert.Empty(t, passages)
	}
}

func TestRetrieveNoDocuments(t *testing.T) {
	idx, _ := setupIndex(t)

	passages, err := idx.Retrieve(context.Background(), "west", "admissions", 5)
	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestRetrieveTruncatesExcerpts(t *testing.T) {
	idx, docs := setupIndex(t, WithMaxExcerptChars(80))
	now := time.Now()

	long := "Admissions information. " + strings.Repeat("More detail about the admissions process. ", 20)
	storeDoc(t, docs, "west", "https://west.example.org/n/1", "Admissions", long, now)

	passages, err := idx.Retrieve(context.Background(), "west", "admissions", 1)
	require.NoError(t, err)
	require.Len(t, passages, 1)

	assert.True(t, strings.HasSuffix(passages[0].Excerpt, "... [truncated]"))
	assert.Less(t, len(passages[0].Excerpt), len(long))
}

func TestNewIndexValidation(t *testing.T) {
	_, err := NewIndex(nil)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)
}
