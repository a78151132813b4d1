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
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/edquery/matnews/core"
)

const passageSeparator = "\n\n---\n\n"

// systemPrompt instructs the model to answer only from the supplied
// newsletter passages and to cite sources as markdown links.
const systemPrompt = `You are an assistant answering parents' questions about a school trust.
Use only the information provided in the newsletter passages below your instructions.
If the passages do not contain the answer, say that the newsletters do not mention it.
When you state a fact taken from a passage, cite its source using markdown link format [title](URL).
Do not invent URLs and do not use any source that is not in the passages.
Keep answers short and factual.`

// noInformationText is returned without a model call when retrieval finds
// nothing relevant.
const noInformationText = "I could not find anything about that in the stored newsletters."

// apologyText is returned when the model is unavailable after retries.
const apologyText = "Sorry, I could not produce an answer right now. Please try again later."

// buildUserPrompt assembles the question and the retrieved passages into a
// single prompt, dropping whole passages from the end when the budget is
// exceeded. At least one passage always survives, truncated if it must be.
func buildUserPrompt(question string, passages []*core.RetrievedPassage, maxChars int) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n\nNewsletter passages:\n\n")

	for i, p := range passages {
		block := passageBlock(p)
		if i > 0 {
			if b.Len()+len(passageSeparator)+len(block) > maxChars {
				break
			}
			b.WriteString(passageSeparator)
		}
		b.WriteString(block)
	}

	prompt := b.String()
	if len(prompt) > maxChars {
		// Back the cut off to a rune boundary so the budget never splits
		// a multi-byte character.
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(prompt[cut]) {
			cut--
		}
		prompt = prompt[:cut]
	}
	return prompt
}

// passageBlock renders one passage with enough header context for the model
// to cite it.
func passageBlock(p *core.RetrievedPassage) string {
	title := p.Document.Title
	if title == "" {
		title = "Newsletter"
	}
	return fmt.Sprintf("Source: [%s](%s)\n\n%s", title, p.Document.SourceURL, p.Excerpt)
}
