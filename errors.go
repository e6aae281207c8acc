// Copyright 2025 Poiesic Systems
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


package pinpoint

import "errors"

var (
	// ErrEmptyQuery is returned when the search query is empty.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrEmptyDocument is returned when the document text is empty.
	ErrEmptyDocument = errors.New("document must not be empty")

	// ErrDocumentTooLarge is returned when the document exceeds the
	// configured size ceiling.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size")
)
