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


// Package answer synthesizes grounded answers to questions about a MAT from
// retrieved newsletter passages, citing only sources that were actually
// retrieved.
package answer

import (
	"context"
	"log/slog"
	"time"

	"github.com/edquery/matnews/ai"
	"github.com/edquery/matnews/core"
	"github.com/edquery/matnews/retrieval"
)

const (
	defaultTopK           = 5
	defaultMaxPromptChars = 30000
	defaultMaxAttempts    = 3
	defaultBaseDelay      = time.Second
)

// Synthesizer answers questions about one MAT's newsletters. Every factual
// claim in an answer traces back to a retrieved passage; a question with no
// relevant passages gets a fixed no-information reply without a model call.
type Synthesizer struct {
	index          *retrieval.Index
	model          ai.ChatModel
	topK           int
	maxPromptChars int
	maxAttempts    int
	baseDelay      time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
	logger         *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer) error

// WithTopK sets how many passages are retrieved per question.
// Default is 5.
func WithTopK(k int) Option {
	return func(s *Synthesizer) error {
		if k > 0 {
			s.topK = k
		}
		return nil
	}
}

// WithMaxPromptChars caps the assembled prompt size.
func WithMaxPromptChars(n int) Option {
	return func(s *Synthesizer) error {
		if n > 0 {
			s.maxPromptChars = n
		}
		return nil
	}
}

// WithMaxAttempts sets how many times the model is tried per question.
// Default is 3.
func WithMaxAttempts(n int) Option {
	return func(s *Synthesizer) error {
		if n > 0 {
			s.maxAttempts = n
		}
		return nil
	}
}

// WithBaseDelay sets the backoff base between model retries.
func WithBaseDelay(d time.Duration) Option {
	return func(s *Synthesizer) error {
		if d > 0 {
			s.baseDelay = d
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSynthesizer creates an answer synthesizer over a retrieval index and a
// chat model.
func NewSynthesizer(index *retrieval.Index, model ai.ChatModel, opts ...Option) (*Synthesizer, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if model == nil {
		return nil, ErrChatModelRequired
	}

	s := &Synthesizer{
		index:          index,
		model:          model,
		topK:           defaultTopK,
		maxPromptChars: defaultMaxPromptChars,
		maxAttempts:    defaultMaxAttempts,
		baseDelay:      defaultBaseDelay,
		sleep:          sleepContext,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Answer answers a question about a MAT from its stored newsletters. The
// returned answer cites only URLs that appeared in the retrieved passages;
// any other link the model produces is demoted to plain text.
func (s *Synthesizer) Answer(ctx context.Context, matID, question string) (*core.Answer, error) {
	passages, err := s.index.Retrieve(ctx, matID, question, s.topK)
	if err != nil {
		return nil, err
	}

	if len(passages) == 0 {
		s.logger.Debug("no relevant passages", "mat", matID, "question", question)
		return &core.Answer{Text: noInformationText}, nil
	}

	userPrompt := buildUserPrompt(question, passages, s.maxPromptChars)

	raw, err := s.complete(ctx, userPrompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("model unavailable, returning apology", "mat", matID, "err", err)
		return &core.Answer{Text: apologyText}, nil
	}

	allowed := make(map[string]bool, len(passages))
	for _, p := range passages {
		allowed[p.Document.SourceURL] = true
	}

	text, cited := SanitizeCitations(raw, allowed)
	return &core.Answer{Text: text, CitedURLs: cited}, nil
}

// complete calls the model with exponential backoff between attempts.
func (s *Synthesizer) complete(ctx context.Context, userPrompt string) (string, error) {
	var lastErr error
	delay := s.baseDelay

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		raw, err := s.model.Complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if attempt < s.maxAttempts {
			s.logger.Warn("model call failed, retrying",
				"attempt", attempt, "delay", delay, "err", err)
			if serr := s.sleep(ctx, delay); serr != nil {
				return "", serr
			}
			delay *= 2
		}
	}

	return "", lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
