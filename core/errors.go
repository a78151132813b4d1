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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a NewsletterDocument failed validation.
	ErrInvalidDocument = errors.New("invalid newsletter document")

	// ErrInvalidSourcePage indicates a SourcePage failed validation.
	ErrInvalidSourcePage = errors.New("invalid source page")

	// ErrEmptyMATID indicates a missing MAT identifier.
	ErrEmptyMATID = errors.New("mat id cannot be empty")

	// ErrEmptySourceURL indicates a missing source URL.
	ErrEmptySourceURL = errors.New("source url cannot be empty")

	// ErrEmptyText indicates the extracted text is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptyContentHash indicates a missing content fingerprint.
	ErrEmptyContentHash = errors.New("content hash cannot be empty")

	// ErrInvalidFetchStatus indicates an invalid FetchStatus value.
	ErrInvalidFetchStatus = errors.New("invalid fetch status")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrUnknownMAT indicates a MAT id that is not present in configuration.
	ErrUnknownMAT = errors.New("unknown mat")
)
