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

package extract

import (
	"sort"

	"github.com/poiesic/pinpoint/core"
)

// Extract runs every registered pattern over text and returns validated,
// typed matches sorted by position. Pattern hits that fail their validator
// are dropped. When matches of different types overlap, the longer span wins;
// on equal length the higher confidence prior wins. Every occurrence is
// reported: repeated values of one type are collapsed at the result layer,
// where occurrences group by canonical value.
func (r *Registry) Extract(text string) []core.SearchMatch {
	if text == "" {
		return []core.SearchMatch{}
	}

	var matches []core.SearchMatch
	for i := range r.entries {
		matches = append(matches, r.extractEntry(text, &r.entries[i])...)
	}

	matches = resolveOverlaps(matches)

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].End > matches[j].End
	})
	return matches
}

func (r *Registry) extractEntry(text string, e *Entry) []core.SearchMatch {
	var out []core.SearchMatch
	seen := make(map[[2]int]bool)

	for _, re := range e.Patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			span := [2]int{loc[0], loc[1]}
			if seen[span] {
				continue
			}
			seen[span] = true

			value := text[loc[0]:loc[1]]
			if e.Validate != nil && !e.Validate(value) {
				continue
			}

			out = append(out, core.SearchMatch{
				Start:      loc[0],
				End:        loc[1],
				Text:       value,
				Score:      e.Confidence,
				Confidence: e.Confidence,
				Type:       e.Type,
				Algorithm:  core.AlgorithmPattern,
				Context:    core.ContextAround(text, loc[0], loc[1], e.ContextWindow),
			})
		}
	}
	return out
}

// resolveOverlaps drops matches whose span overlaps a stronger match of a
// different type. Same-type overlaps are kept: repeated pattern families like
// dates legitimately nest.
func resolveOverlaps(matches []core.SearchMatch) []core.SearchMatch {
	if len(matches) < 2 {
		return matches
	}

	keep := make([]bool, len(matches))
	for i := range keep {
		keep[i] = true
	}

	for i := range matches {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(matches); j++ {
			if !keep[j] || matches[i].Type == matches[j].Type {
				continue
			}
			if matches[i].End <= matches[j].Start || matches[j].End <= matches[i].Start {
				continue
			}
			if weaker(&matches[i], &matches[j]) {
				keep[i] = false
				break
			}
			keep[j] = false
		}
	}

	out := matches[:0]
	for i, m := range matches {
		if keep[i] {
			out = append(out, m)
		}
	}
	return out
}

// weaker reports whether a loses the overlap against b: shorter span loses,
// then lower confidence.
func weaker(a, b *core.SearchMatch) bool {
	if la, lb := a.End-a.Start, b.End-b.Start; la != lb {
		return la < lb
	}
	return a.Confidence < b.Confidence
}
