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
	"regexp"
	"strings"
)

// markdownLink matches [label](target) with no nested brackets in the label.
var markdownLink = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]*)\)`)

// SanitizeCitations removes every markdown link in text whose target is not
// in the allowed set, keeping the link's label as plain text. Links that
// survive must also be http(s). Returns the cleaned text and the distinct
// allowed URLs actually cited, in order of first appearance.
func SanitizeCitations(text string, allowed map[string]bool) (string, []string) {
	var cited []string
	seen := make(map[string]bool)

	cleaned := markdownLink.ReplaceAllStringFunc(text, func(match string) string {
		groups := markdownLink.FindStringSubmatch(match)
		label, target := groups[1], groups[2]

		if !allowed[target] || !isWebURL(target) {
			return label
		}

		if !seen[target] {
			seen[target] = true
			cited = append(cited, target)
		}
		return match
	})

	return cleaned, cited
}

func isWebURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
