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


package answer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edquery/matnews/core"
)

func passageFor(title, url, excerpt string) *core.RetrievedPassage {
	return &core.RetrievedPassage{
		Document: &core.NewsletterDocument{Title: title, SourceURL: url},
		Excerpt:  excerpt,
	}
}

func TestBuildUserPromptDropsWholePassages(t *testing.T) {
	passages := []*core.RetrievedPassage{
		passageFor("First", "https://west.example.org/n/1", strings.Repeat("a", 100)),
		passageFor("Second", "https://west.example.org/n/2", strings.Repeat("b", 100)),
	}

	prompt := buildUserPrompt("question", passages, 200)
	assert.Contains(t, prompt, "https://west.example.org/n/1")
	assert.NotContains(t, prompt, "https://west.example.org/n/2")
}

func TestBuildUserPromptCutsOnRuneBoundary(t *testing.T) {
	// Three-byte runes guarantee most budget values land mid-rune.
	excerpt := strings.Repeat("日本語の通信", 200)
	passages := []*core.RetrievedPassage{
		passageFor("学校だより", "https://west.example.org/n/1", excerpt),
	}

	for budget := 100; budget < 110; budget++ {
		prompt := buildUserPrompt("いつですか", passages, budget)
		require.LessOrEqual(t, len(prompt), budget)
		assert.True(t, utf8.ValidString(prompt), "budget %d split a rune", budget)
	}
}
