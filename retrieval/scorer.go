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

import "github.com/edquery/matnews/core"

// Scorer assigns a relevance score to a document for a query. Scores are
// comparable only within one Retrieve call; zero means no relevance.
type Scorer interface {
	Score(query string, doc *core.NewsletterDocument) float32
}

const (
	titleWeight = 3
	bodyWeight  = 1
)

// LexicalScorer is the default scorer: weighted keyword matching with title
// matches worth more than body matches. It needs no model calls and no
// precomputed index, which keeps retrieval deterministic and dependency-free.
type LexicalScorer struct{}

var _ Scorer = LexicalScorer{}

// Score counts distinct query words present in the document, weighting
// title hits over body hits, normalized to [0, 1] by the best possible
// score for the query.
func (LexicalScorer) Score(query string, doc *core.NewsletterDocument) float32 {
	queryTokens := tokenizeAndFilter(query)
	if len(queryTokens) == 0 {
		return 0
	}

	// Dedupe query tokens so repeated words don't inflate the score.
	distinct := make(map[string]bool, len(queryTokens))
	for _, token := range queryTokens {
		distinct[token] = true
	}

	titleTokens := tokenSet(doc.Title)
	bodyTokens := tokenSet(doc.Text)

	var hits int
	for token := range distinct {
		if titleTokens[token] {
			hits += titleWeight
		}
		if bodyTokens[token] {
			hits += bodyWeight
		}
	}

	best := len(distinct) * (titleWeight + bodyWeight)
	return float32(hits) / float32(best)
}
