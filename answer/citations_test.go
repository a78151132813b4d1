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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCitations(t *testing.T) {
	allowed := map[string]bool{
		"https://west.example.org/n/12": true,
		"https://west.example.org/n/13": true,
	}

	t.Run("allowed link kept and cited", func(t *testing.T) {
		text, cited := SanitizeCitations(
			"The INSET day is Friday [Issue 12](https://west.example.org/n/12).", allowed)

		assert.Equal(t, "The INSET day is Friday [Issue 12](https://west.example.org/n/12).", text)
		assert.Equal(t, []string{"https://west.example.org/n/12"}, cited)
	})

	t.Run("disallowed link demoted to label", func(t *testing.T) {
		text, cited := SanitizeCitations(
			"See [the council site](https://council.example.gov/dates) for details.", allowed)

		assert.Equal(t, "See the council site for details.", text)
		assert.Empty(t, cited)
	})

	t.Run("duplicate citations deduped in order", func(t *testing.T) {
		text, cited := SanitizeCitations(
			"[a](https://west.example.org/n/13) then [b](https://west.example.org/n/12) then [c](https://west.example.org/n/13)",
			allowed)

		assert.Contains(t, text, "[a](https://west.example.org/n/13)")
		assert.Equal(t, []string{
			"https://west.example.org/n/13",
			"https://west.example.org/n/12",
		}, cited)
	})

	t.Run("non-web scheme dropped even when allowed", func(t *testing.T) {
		withScheme := map[string]bool{"mailto:office@west.example.org": true}
		text, cited := SanitizeCitations(
			"Contact [the office](mailto:office@west.example.org).", withScheme)

		assert.Equal(t, "Contact the office.", text)
		assert.Empty(t, cited)
	})

	t.Run("no links passes through", func(t *testing.T) {
		text, cited := SanitizeCitations("Plain answer with no citations.", allowed)

		assert.Equal(t, "Plain answer with no citations.", text)
		assert.Empty(t, cited)
	})
}
