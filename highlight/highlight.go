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

package highlight

import (
	"html"
	"sort"

	"github.com/poiesic/pinpoint/core"
)

// Options configures segment rendering.
type Options struct {
	// MergeAdjacent also merges touching (non-overlapping) ranges into one
	// highlighted segment.
	MergeAdjacent bool

	// EscapeHTML escapes markup-sensitive characters in every segment,
	// highlighted or not, so the output can be embedded in HTML directly.
	EscapeHTML bool
}

// Render splits text into plain and highlighted segments according to the
// given ranges. Overlapping ranges merge into a single highlighted segment
// spanning their union; the metadata of the higher-priority (then
// higher-scoring) range is kept for attribution. Out-of-range offsets are
// clamped, zero-length ranges dropped. Concatenating the segment texts
// (before escaping) reproduces text exactly.
func Render(text string, ranges []core.HighlightRange, opts Options) []core.Segment {
	merged := mergeRanges(sanitize(text, ranges), opts.MergeAdjacent)

	segments := make([]core.Segment, 0, 2*len(merged)+1)
	pos := 0
	for _, r := range merged {
		if r.Start > pos {
			segments = append(segments, core.Segment{Text: text[pos:r.Start]})
		}
		kept := r
		segments = append(segments, core.Segment{
			Text:        text[r.Start:r.End],
			Highlighted: true,
			Range:       &kept,
		})
		pos = r.End
	}
	if pos < len(text) {
		segments = append(segments, core.Segment{Text: text[pos:]})
	}

	if opts.EscapeHTML {
		for i := range segments {
			segments[i].Text = html.EscapeString(segments[i].Text)
		}
	}
	return segments
}

// sanitize clamps ranges to the document bounds, drops empty and inverted
// ones, and sorts the survivors by start.
func sanitize(text string, ranges []core.HighlightRange) []core.HighlightRange {
	valid := make([]core.HighlightRange, 0, len(ranges))
	for _, r := range ranges {
		r.Start, r.End = core.ClampRange(r.Start, r.End, len(text))
		if r.Start >= r.End {
			continue
		}
		valid = append(valid, r)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End > valid[j].End
	})
	return valid
}

// mergeRanges unions overlapping ranges so no position is highlighted twice.
func mergeRanges(sorted []core.HighlightRange, adjacent bool) []core.HighlightRange {
	if len(sorted) == 0 {
		return sorted
	}

	merged := []core.HighlightRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]

		overlaps := r.Start < last.End
		touches := adjacent && r.Start == last.End
		if !overlaps && !touches {
			merged = append(merged, r)
			continue
		}

		if r.End > last.End {
			last.End = r.End
		}
		if stronger(r, *last) {
			start, end := last.Start, last.End
			*last = r
			last.Start, last.End = start, end
		}
	}
	return merged
}

// stronger reports whether a's metadata should win attribution over b's:
// higher priority first, then higher score.
func stronger(a, b core.HighlightRange) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Score > b.Score
}
