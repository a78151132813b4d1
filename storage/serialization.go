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


package storage

import (
	"github.com/edquery/matnews/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalNewsletterDocument serializes a NewsletterDocument to bytes.
func MarshalNewsletterDocument(doc *core.NewsletterDocument) []byte {
	buf := make([]byte, core.NewsletterDocumentMUS.Size(*doc))
	core.NewsletterDocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalNewsletterDocument deserializes a NewsletterDocument from bytes.
func UnmarshalNewsletterDocument(data []byte) (*core.NewsletterDocument, error) {
	doc, _, err := core.NewsletterDocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalSourcePage serializes a SourcePage to bytes.
func MarshalSourcePage(page *core.SourcePage) []byte {
	buf := make([]byte, core.SourcePageMUS.Size(*page))
	core.SourcePageMUS.Marshal(*page, buf)
	return buf
}

// UnmarshalSourcePage deserializes a SourcePage from bytes.
func UnmarshalSourcePage(data []byte) (*core.SourcePage, error) {
	page, _, err := core.SourcePageMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
