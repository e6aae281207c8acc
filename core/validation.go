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

import "fmt"

// ValidateMatch validates a SearchMatch against the document it claims to
// be located in.
//
// Validation rules:
//   - 0 <= Start < End <= len(document)
//   - Text equals document[Start:End]
//   - Score and Confidence are within [0,1]
//
// NOT validated:
//   - Type and Algorithm (zero values are legal)
//   - Context (informational only)
func ValidateMatch(document string, m *SearchMatch) error {
	if m == nil {
		return fmt.Errorf("%w: match is nil", ErrInvalidMatch)
	}

	if m.Start < 0 || m.End > len(document) || m.Start >= m.End {
		return fmt.Errorf("%w: %w: [%d,%d) in document of length %d",
			ErrInvalidMatch, ErrInvalidRange, m.Start, m.End, len(document))
	}

	if m.Text != document[m.Start:m.End] {
		return fmt.Errorf("%w: %w", ErrInvalidMatch, ErrTextMismatch)
	}

	if m.Score < 0 || m.Score > 1 || m.Confidence < 0 || m.Confidence > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidMatch, ErrScoreOutOfRange)
	}

	return nil
}

// ClampRange clamps a [start,end) span to [0, limit]. The returned span may
// be empty (start == end) when the input lies entirely outside the document.
func ClampRange(start, end, limit int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	if end < start {
		end = start
	}
	return start, end
}
