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


// Package ai provides abstractions for the language-model services used to
// synthesize answers from retrieved newsletter passages.
//
// The answer synthesizer depends on the ChatModel interface defined here,
// never on a concrete client, so the model backend can be swapped and tests
// can run without network access.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return interface types to enforce the
// abstraction; mock constructors return concrete types so tests can inject
// behavior and assert on call counts.
package ai
