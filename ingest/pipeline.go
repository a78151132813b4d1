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


// Package ingest orchestrates batch ingestion of newsletter URLs: fetching,
// content extraction and idempotent storage, fanned out over a worker pool.
package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/edquery/matnews/core"
	"github.com/edquery/matnews/extract"
	"github.com/edquery/matnews/storage"
)

// Fetcher retrieves the raw bytes of one newsletter URL for a MAT.
type Fetcher interface {
	Fetch(ctx context.Context, matID, url string) ([]byte, error)
}

// Pipeline ingests batches of newsletter URLs for a MAT. Each URL is
// processed independently on a worker pool; one bad page never aborts the
// batch.
type Pipeline struct {
	fetcher   Fetcher
	documents storage.DocumentRepository
	pages     storage.SourcePageRepository
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent fetching.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithSourcePages lets the pipeline mark pages whose content could not be
// extracted, so fetch bookkeeping distinguishes "fetched but unusable" from
// plain fetch failures.
func WithSourcePages(pages storage.SourcePageRepository) Option {
	return func(p *Pipeline) error {
		p.pages = pages
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(fetcher Fetcher, documents storage.DocumentRepository, opts ...Option) (*Pipeline, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		fetcher:   fetcher,
		documents: documents,
		pool:      pool,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestURLs fetches, extracts and stores every URL in the batch. The
// summary counts newly stored documents as Fetched; refetches of already
// stored content count as Deduplicated; fetch and extraction failures count
// as Failed. The call blocks until the whole batch is done.
func (p *Pipeline) IngestURLs(ctx context.Context, matID string, urls []string) (*core.IngestSummary, error) {
	var (
		mu      sync.Mutex
		summary core.IngestSummary
		wg      sync.WaitGroup
	)

	record := func(update func(*core.IngestSummary)) {
		mu.Lock()
		update(&summary)
		mu.Unlock()
	}

	for _, url := range urls {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			p.ingestOne(ctx, matID, url, record)
		}
		if err := p.pool.Submit(task); err != nil {
			wg.Done()
			record(func(s *core.IngestSummary) { s.Failed++ })
			p.logger.Error("failed to submit ingest task", "url", url, "err", err)
		}
	}

	wg.Wait()
	return &summary, nil
}

// IngestTemplate expands a {id} URL template over [start, end] and ingests
// the resulting URLs.
func (p *Pipeline) IngestTemplate(ctx context.Context, matID, template string, start, end int) (*core.IngestSummary, error) {
	urls, err := ExpandTemplate(template, start, end)
	if err != nil {
		return nil, err
	}
	return p.IngestURLs(ctx, matID, urls)
}

// ingestOne runs the fetch-extract-store sequence for a single URL.
func (p *Pipeline) ingestOne(ctx context.Context, matID, url string, record func(func(*core.IngestSummary))) {
	body, err := p.fetcher.Fetch(ctx, matID, url)
	if err != nil {
		record(func(s *core.IngestSummary) { s.Failed++ })
		p.logger.Warn("fetch failed", "mat", matID, "url", url, "err", err)
		return
	}

	extraction, err := extract.Extract(url, body)
	if err != nil {
		record(func(s *core.IngestSummary) { s.Failed++ })
		p.markUnusable(ctx, matID, url, err)
		p.logger.Warn("extraction failed", "mat", matID, "url", url, "err", err)
		return
	}

	doc := &core.NewsletterDocument{
		MATID:       matID,
		SourceURL:   url,
		ContentHash: extraction.ContentHash,
		Title:       extraction.Title,
		Text:        extraction.Text,
		Links:       extraction.Links,
		FetchedAt:   time.Now().UTC(),
	}

	result, err := p.documents.Put(ctx, doc)
	if err != nil {
		record(func(s *core.IngestSummary) { s.Failed++ })
		p.logger.Error("failed to store document", "mat", matID, "url", url, "err", err)
		return
	}

	switch result {
	case storage.PutInserted:
		record(func(s *core.IngestSummary) { s.Fetched++ })
	case storage.PutDeduplicated:
		record(func(s *core.IngestSummary) { s.Deduplicated++ })
		p.logger.Debug("content already stored", "mat", matID, "url", url)
	}
}

// markUnusable overwrites the page's fetch record: the GET succeeded, but the
// content yielded nothing storable.
func (p *Pipeline) markUnusable(ctx context.Context, matID, url string, cause error) {
	if p.pages == nil {
		return
	}
	page := &core.SourcePage{
		MATID:            matID,
		URL:              url,
		LastFetchAttempt: time.Now().UTC(),
		LastStatus:       core.FetchStatusUnusable,
		LastError:        cause.Error(),
	}
	if err := p.pages.Upsert(ctx, page); err != nil {
		p.logger.Error("failed to mark page unusable", "url", url, "err", err)
	}
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
