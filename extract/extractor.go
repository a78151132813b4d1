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


// Package extract turns raw newsletter HTML into the normalized fields a
// NewsletterDocument is built from: main text, title, outbound links and a
// content fingerprint.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/edquery/matnews/core"
)

// Extraction is the result of extracting a single newsletter page.
type Extraction struct {
	// Title is the best available page title, empty when none was found.
	Title string

	// Text is the normalized main text content.
	Text string

	// Links are the absolute http(s) URLs referenced by the page, in
	// document order with duplicates removed.
	Links []string

	// ContentHash is the fingerprint of the normalized text. Two pages
	// that differ only in markup or whitespace share a hash.
	ContentHash string
}

// Extract parses one newsletter page. The pageURL anchors relative links and
// helps the readability pass; it must be an absolute http(s) URL. Returns
// ErrNoUsableText when the page has no main text content.
func Extract(pageURL string, page []byte) (*Extraction, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid page url %q", ErrParseFailed, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	article, readErr := readability.FromReader(bytes.NewReader(page), base)

	text := ""
	if readErr == nil {
		text = NormalizeText(article.TextContent)
	}
	if text == "" {
		// Newsletters are often table soup readability gives up on;
		// fall back to the visible body text.
		text = NormalizeText(doc.Find("body").Text())
	}
	if text == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoUsableText, pageURL)
	}

	title := ""
	if readErr == nil {
		title = strings.TrimSpace(article.Title)
	}
	if title == "" {
		title = fallbackTitle(doc)
	}

	return &Extraction{
		Title:       title,
		Text:        text,
		Links:       extractLinks(doc, base),
		ContentHash: core.HashContent(text),
	}, nil
}

// fallbackTitle walks the usual suspects when readability finds no title.
func fallbackTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	if title, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	return ""
}

// extractLinks collects absolute http(s) anchors in document order,
// dropping duplicates and fragment-only or non-web references.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		abs := resolved.String()
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	return links
}

// NormalizeText canonicalizes extracted text so equivalent content always
// produces the same bytes: lines are trimmed, intra-line whitespace runs
// collapse to single spaces, and blank lines disappear.
func NormalizeText(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
