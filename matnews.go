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


// Package matnews assembles the newsletter ingestion and question-answering
// services for multi-academy trusts behind one facade. Callers configure it
// once and get MAT-scoped ingestion, storage and grounded answering without
// wiring the internals themselves.
package matnews

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edquery/matnews/ai"
	aiopenai "github.com/edquery/matnews/ai/openai"
	"github.com/edquery/matnews/answer"
	"github.com/edquery/matnews/config"
	"github.com/edquery/matnews/core"
	"github.com/edquery/matnews/fetch"
	"github.com/edquery/matnews/ingest"
	"github.com/edquery/matnews/retrieval"
	"github.com/edquery/matnews/storage"
	badgerstore "github.com/edquery/matnews/storage/badger"
)

// Service is the top-level entry point. It owns the storage backend, the
// rate-limited fetcher, the ingestion pipeline and the answer synthesizer,
// and releases them in reverse order on Close.
type Service struct {
	cfg         config.Config
	backend     *badgerstore.Backend
	documents   storage.DocumentRepository
	pages       storage.SourcePageRepository
	provider    ai.AIProvider
	pipeline    *ingest.Pipeline
	synthesizer *answer.Synthesizer
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	logger    *slog.Logger
	chatModel ai.ChatModel
	clock     fetch.Clock
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithChatModel bypasses the OpenAI provider and uses the given model
// directly. Tests use this to avoid network access.
func WithChatModel(model ai.ChatModel) Option {
	return func(o *serviceOptions) {
		o.chatModel = model
	}
}

// WithClock sets the fetcher clock. Tests use this to drive backoff without
// real sleeps.
func WithClock(clock fetch.Clock) Option {
	return func(o *serviceOptions) {
		o.clock = clock
	}
}

// New builds a Service from configuration. The storage directory is created
// when missing. Close must be called to release the backend.
func New(cfg config.Config, opts ...Option) (*Service, error) {
	options := &serviceOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	backend, err := badgerstore.OpenBackend(cfg.Storage.Path, cfg.Storage.InMemory)
	if err != nil {
		return nil, fmt.Errorf("open storage backend: %w", err)
	}

	documents := badgerstore.NewDocumentRepository(backend)
	pages := badgerstore.NewSourcePageRepository(backend)

	cleanup := func() {
		documents.Close()
		pages.Close()
		backend.Close()
	}

	limiters := fetch.NewDomainLimiters(cfg.Fetch.RatePerSecond, cfg.Fetch.Burst)
	fetchOpts := []fetch.Option{
		fetch.WithMaxAttempts(cfg.Fetch.MaxAttempts),
		fetch.WithBaseDelay(time.Duration(cfg.Fetch.BaseDelayMillis) * time.Millisecond),
		fetch.WithLogger(logger),
	}
	if cfg.Fetch.UserAgent != "" {
		fetchOpts = append(fetchOpts, fetch.WithUserAgent(cfg.Fetch.UserAgent))
	}
	if options.clock != nil {
		fetchOpts = append(fetchOpts, fetch.WithClock(options.clock))
	}

	fetcher, err := fetch.NewFetcher(limiters, pages, fetchOpts...)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	pipelineOpts := []ingest.Option{
		ingest.WithSourcePages(pages),
		ingest.WithLogger(logger),
	}
	if cfg.Fetch.PoolSize > 0 {
		pipelineOpts = append(pipelineOpts, ingest.WithPoolSize(cfg.Fetch.PoolSize))
	}
	pipeline, err := ingest.NewPipeline(fetcher, documents, pipelineOpts...)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("create ingestion pipeline: %w", err)
	}

	index, err := retrieval.NewIndex(documents,
		retrieval.WithMinScore(cfg.Retrieval.MinScore),
		retrieval.WithMaxExcerptChars(cfg.Retrieval.MaxExcerptChars),
		retrieval.WithLogger(logger),
	)
	if err != nil {
		pipeline.Release()
		cleanup()
		return nil, fmt.Errorf("create retrieval index: %w", err)
	}

	var provider ai.AIProvider
	model := options.chatModel
	if model == nil {
		provider, err = aiopenai.NewProvider(ai.NewConfig(
			ai.WithHost(cfg.Model.Host),
			ai.WithModel(cfg.Model.Model),
			ai.WithAPIKey(cfg.Model.APIKey),
			ai.WithTemperature(cfg.Model.Temperature),
		))
		if err != nil {
			pipeline.Release()
			cleanup()
			return nil, fmt.Errorf("create model provider: %w", err)
		}
		model = provider.ChatModel()
	}

	synthesizer, err := answer.NewSynthesizer(index, model,
		answer.WithTopK(cfg.Retrieval.TopK),
		answer.WithLogger(logger),
	)
	if err != nil {
		if provider != nil {
			provider.Close()
		}
		pipeline.Release()
		cleanup()
		return nil, fmt.Errorf("create answer synthesizer: %w", err)
	}

	return &Service{
		cfg:         cfg,
		backend:     backend,
		documents:   documents,
		pages:       pages,
		provider:    provider,
		pipeline:    pipeline,
		synthesizer: synthesizer,
		logger:      logger,
	}, nil
}

// ListMATs returns every configured trust.
func (s *Service) ListMATs() []core.MAT {
	mats := make([]core.MAT, 0, len(s.cfg.MATs))
	for _, mc := range s.cfg.MATs {
		mats = append(mats, matFromConfig(mc))
	}
	return mats
}

// GetMAT returns one configured trust by ID.
// Returns core.ErrUnknownMAT when no trust has that ID.
func (s *Service) GetMAT(id string) (*core.MAT, error) {
	mc, ok := s.cfg.MAT(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownMAT, id)
	}
	mat := matFromConfig(mc)
	return &mat, nil
}

// Ingest fetches, extracts and stores the given newsletter URLs for a trust.
func (s *Service) Ingest(ctx context.Context, matID string, urls []string) (*core.IngestSummary, error) {
	if _, err := s.GetMAT(matID); err != nil {
		return nil, err
	}
	return s.pipeline.IngestURLs(ctx, matID, urls)
}

// IngestSeeds ingests the trust's configured seed URLs.
func (s *Service) IngestSeeds(ctx context.Context, matID string) (*core.IngestSummary, error) {
	mat, err := s.GetMAT(matID)
	if err != nil {
		return nil, err
	}
	return s.pipeline.IngestURLs(ctx, matID, mat.SeedURLs)
}

// IngestTemplate expands a {id} URL template over [start, end] and ingests
// the resulting URLs for a trust.
func (s *Service) IngestTemplate(ctx context.Context, matID, template string, start, end int) (*core.IngestSummary, error) {
	if _, err := s.GetMAT(matID); err != nil {
		return nil, err
	}
	return s.pipeline.IngestTemplate(ctx, matID, template, start, end)
}

// Answer answers a question about a trust from its stored newsletters.
func (s *Service) Answer(ctx context.Context, matID, question string) (*core.Answer, error) {
	if _, err := s.GetMAT(matID); err != nil {
		return nil, err
	}
	return s.synthesizer.Answer(ctx, matID, question)
}

// Documents lists a trust's stored newsletter documents, newest first.
func (s *Service) Documents(ctx context.Context, matID string) ([]*core.NewsletterDocument, error) {
	if _, err := s.GetMAT(matID); err != nil {
		return nil, err
	}
	return s.documents.ListByMAT(ctx, matID)
}

// SourcePages lists a trust's fetch bookkeeping records.
func (s *Service) SourcePages(ctx context.Context, matID string) ([]*core.SourcePage, error) {
	if _, err := s.GetMAT(matID); err != nil {
		return nil, err
	}
	return s.pages.ListByMAT(ctx, matID)
}

// Close releases every owned resource in reverse construction order.
func (s *Service) Close() error {
	s.pipeline.Release()

	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			s.logger.Error("error closing model provider", "err", err)
		}
	}

	if err := s.documents.Close(); err != nil {
		s.logger.Error("error closing document repository", "err", err)
	}
	if err := s.pages.Close(); err != nil {
		s.logger.Error("error closing source page repository", "err", err)
	}

	return s.backend.Close()
}

func matFromConfig(mc config.MATConfig) core.MAT {
	return core.MAT{
		ID:       mc.ID,
		Name:     mc.Name,
		LogoURL:  mc.LogoURL,
		SeedURLs: mc.SeedURLs,
	}
}
