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


package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsletterPage = `<!DOCTYPE html>
<html>
<head><title>West MAT Newsletter - Issue 12</title></head>
<body>
<article>
<h1>Issue 12</h1>
<p>Welcome back to the spring term. The trust INSET day will take
place on <b>Friday 20 March 2026</b> across all schools.</p>
<p>Parents can book places for the science fair
<a href="/events/science-fair">here</a> or read the
<a href="https://west.example.org/policies/uniform.pdf">uniform policy</a>.</p>
<p>External resource: <a href="mailto:office@west.example.org">email us</a>
or see <a href="#top">top of page</a>.</p>
<p><a href="/events/science-fair">book again</a></p>
</article>
</body>
</html>`

func TestExtractNewsletter(t *testing.T) {
	result, err := Extract("https://west.example.org/newsletters/12", []byte(newsletterPage))
	require.NoError(t, err)

	assert.Contains(t, result.Title, "Issue 12")
	assert.Contains(t, result.Text, "INSET day")
	assert.Contains(t, result.Text, "Friday 20 March 2026")
	assert.NotEmpty(t, result.ContentHash)

	// Relative links resolve against the page URL; mailto and fragment
	// links are dropped, duplicates collapse to the first occurrence.
	assert.Equal(t, []string{
		"https://west.example.org/events/science-fair",
		"https://west.example.org/policies/uniform.pdf",
	}, result.Links)
}

func TestExtractHashIgnoresMarkupAndWhitespace(t *testing.T) {
	a := "<html><body><article><p>Term   dates for   2026.</p>\n<p>INSET on Friday.</p></article></body></html>"
	b := `<html><body><div class="content"><article><p>
		Term dates
		for 2026.</p>

		<p>INSET on Friday.</p></article></div></body></html>`

	ra, err := Extract("https://west.example.org/n/1", []byte(a))
	require.NoError(t, err)
	rb, err := Extract("https://west.example.org/n/1", []byte(b))
	require.NoError(t, err)

	assert.Equal(t, ra.ContentHash, rb.ContentHash)
}

func TestExtractTitleFallback(t *testing.T) {
	t.Run("title tag", func(t *testing.T) {
		page := `<html><head><title>Autumn Update</title></head><body><p>Some newsletter content for families.</p></body></html>`
		result, err := Extract("https://west.example.org/n/2", []byte(page))
		require.NoError(t, err)
		assert.Equal(t, "Autumn Update", result.Title)
	})

	t.Run("h1 when no title tag", func(t *testing.T) {
		page := `<html><body><h1>Spring Update</h1><p>Some newsletter content for families.</p></body></html>`
		result, err := Extract("https://west.example.org/n/3", []byte(page))
		require.NoError(t, err)
		assert.Equal(t, "Spring Update", result.Title)
	})

	t.Run("no title anywhere", func(t *testing.T) {
		page := `<html><body><p>Some newsletter content for families.</p></body></html>`
		result, err := Extract("https://west.example.org/n/4", []byte(page))
		require.NoError(t, err)
		assert.Empty(t, result.Title)
	})
}

func TestExtractNoUsableText(t *testing.T) {
	page := `<html><head><title>Empty</title></head><body>   </body></html>`
	_, err := Extract("https://west.example.org/n/5", []byte(page))
	assert.ErrorIs(t, err, ErrNoUsableText)
}

func TestNormalizeText(t *testing.T) {
	raw := "  Line one \t has   gaps  \n\n\n  Line two  \n   \n"
	assert.Equal(t, "Line one has gaps\nLine two", NormalizeText(raw))
}
