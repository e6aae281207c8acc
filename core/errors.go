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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidMatch indicates a SearchMatch failed validation.
	ErrInvalidMatch = errors.New("invalid match")

	// ErrInvalidRange indicates a span has Start >= End or negative offsets.
	ErrInvalidRange = errors.New("invalid range")

	// ErrTextMismatch indicates a match's Text does not reproduce the
	// document slice at its claimed offsets.
	ErrTextMismatch = errors.New("match text does not reproduce document slice")

	// ErrScoreOutOfRange indicates a score or confidence outside [0,1].
	ErrScoreOutOfRange = errors.New("score out of range")
)
