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


package ingest

import (
	"strconv"
	"strings"
)

const idPlaceholder = "{id}"

// ExpandTemplate expands a URL template containing the {id} placeholder into
// one URL per issue number in [start, end]. Newsletter archives commonly
// publish issues at sequential URLs, so a whole back catalogue can be named
// with one template.
func ExpandTemplate(template string, start, end int) ([]string, error) {
	if !strings.Contains(template, idPlaceholder) {
		return nil, ErrMissingPlaceholder
	}
	if end < start {
		return nil, ErrInvalidRange
	}

	urls := make([]string, 0, end-start+1)
	for id := start; id <= end; id++ {
		urls = append(urls, strings.ReplaceAll(template, idPlaceholder, strconv.Itoa(id)))
	}
	return urls, nil
}
