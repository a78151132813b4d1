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


// Package retrieval ranks a MAT's stored newsletter documents against a
// question and returns scored, excerpted passages for answer synthesis.
package retrieval

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/edquery/matnews/core"
	"github.com/edquery/matnews/storage"
)

const (
	// defaultMaxExcerptChars bounds how much of one document is handed to
	// the answer synthesizer.
	defaultMaxExcerptChars = 10000

	truncationMarker = "... [truncated]"
)

// Index ranks a MAT's documents against a query. It scans the MAT's stored
// documents on every call; newsletter volumes per trust are small enough
// that no precomputed structure is worth the consistency cost.
type Index struct {
	documents       storage.DocumentRepository
	scorer          Scorer
	minScore        float32
	maxExcerptChars int
	logger          *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithScorer replaces the default lexical scorer.
func WithScorer(scorer Scorer) Option {
	return func(idx *Index) error {
		if scorer != nil {
			idx.scorer = scorer
		}
		return nil
	}
}

// WithMinScore sets the relevance threshold; documents scoring at or below
// it are excluded. Default is 0: any positive score qualifies.
func WithMinScore(min float32) Option {
	return func(idx *Index) error {
		idx.minScore = min
		return nil
	}
}

// WithMaxExcerptChars caps excerpt length per passage.
func WithMaxExcerptChars(n int) Option {
	return func(idx *Index) error {
		if n > 0 {
			idx.maxExcerptChars = n
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		idx.logger = logger
		return nil
	}
}

// NewIndex creates a retrieval index over stored documents.
func NewIndex(documents storage.DocumentRepository, opts ...Option) (*Index, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}

	idx := &Index{
		documents:       documents,
		scorer:          LexicalScorer{},
		maxExcerptChars: defaultMaxExcerptChars,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

// Retrieve returns up to k passages from the MAT's documents, ranked by
// relevance. Ties break by fetch recency, then by document ID, so identical
// inputs always produce identical output order. Finding nothing is not a
// failure: a query with no searchable words, like a MAT with no relevant
// documents, returns an empty slice and no error.
func (idx *Index) Retrieve(ctx context.Context, matID, query string, k int) ([]*core.RetrievedPassage, error) {
	if len(tokenizeAndFilter(query)) == 0 {
		idx.logger.Debug("query has no searchable words", "mat", matID, "query", query)
		return nil, nil
	}
	if k < 1 {
		k = 1
	}

	docs, err := idx.documents.ListByMAT(ctx, matID)
	if err != nil {
		idx.logger.Error("failed to list documents for retrieval", "mat", matID, "err", err)
		return nil, err
	}

	passages := make([]*core.RetrievedPassage, 0, len(docs))
	for _, doc := range docs {
		score := idx.scorer.Score(query, doc)
		if score <= idx.minScore {
			continue
		}
		passages = append(passages, &core.RetrievedPassage{
			Document: doc,
			Score:    score,
			Excerpt:  idx.excerpt(doc.Text),
		})
	}

	slices.SortFunc(passages, func(a, b *core.RetrievedPassage) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		switch {
		case a.Document.FetchedAt.After(b.Document.FetchedAt):
			return -1
		case a.Document.FetchedAt.Before(b.Document.FetchedAt):
			return 1
		}
		switch {
		case a.Document.Id < b.Document.Id:
			return -1
		case a.Document.Id > b.Document.Id:
			return 1
		}
		return 0
	})

	if len(passages) > k {
		passages = passages[:k]
	}
	return passages, nil
}

// excerpt caps text at the configured limit, cutting on a word boundary.
func (idx *Index) excerpt(text string) string {
	if len(text) <= idx.maxExcerptChars {
		return text
	}

	cut := text[:idx.maxExcerptChars]
	if i := strings.LastIndexAny(cut, " \n"); i > 0 {
		cut = cut[:i]
	}
	return cut + truncationMarker
}
