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

package fuzzy

import (
	"context"
	"math"
	"sort"

	"github.com/poiesic/pinpoint/core"
	"github.com/poiesic/pinpoint/normalize"
)

const (
	// DefaultMinScore is the similarity floor below which candidates are
	// dropped.
	DefaultMinScore = 0.7

	// DefaultMaxResults caps the number of matches a single Find call
	// returns.
	DefaultMaxResults = 20

	// DefaultContextLength pads each match's context on both sides.
	DefaultContextLength = 48

	// DefaultReplaceThreshold is the relative score advantage a candidate
	// needs to displace an already-accepted overlapping candidate. It is a
	// tuning heuristic, not a correctness invariant.
	DefaultReplaceThreshold = 0.20

	// lengthToleranceCap bounds how far window lengths may deviate from the
	// query length.
	lengthToleranceCap = 3

	// largeDocumentRunes and shortQueryRunes guard against pathological
	// candidate counts: a very short query against a very large document is
	// rejected outright.
	largeDocumentRunes = 10000
	shortQueryRunes    = 3

	// cancelCheckInterval is how many window positions are scored between
	// context checks.
	cancelCheckInterval = 512
)

// Options configures a fuzzy search.
type Options struct {
	// Algorithm selects the scoring function. Supported values are
	// AlgorithmLevenshtein, AlgorithmJaro, AlgorithmJaroWinkler, and
	// AlgorithmHybrid (the default).
	Algorithm core.Algorithm

	// MinScore drops candidates scoring below it.
	MinScore float64

	// MaxResults caps the result count after overlap filtering.
	MaxResults int

	// ContextLength pads match context; zero disables context capture.
	ContextLength int

	// ReplaceThreshold is the relative advantage needed to displace an
	// overlapping accepted candidate. Candidates are considered best-first,
	// so with a positive threshold no later candidate can displace one
	// already accepted here; the knob's observable effect is in the rank
	// package's duplicate collapse, which shares the same default.
	ReplaceThreshold float64
}

// DefaultOptions returns the hybrid-algorithm defaults.
func DefaultOptions() Options {
	return Options{
		Algorithm:        core.AlgorithmHybrid,
		MinScore:         DefaultMinScore,
		MaxResults:       DefaultMaxResults,
		ContextLength:    DefaultContextLength,
		ReplaceThreshold: DefaultReplaceThreshold,
	}
}

type candidate struct {
	start int // normalized byte offset
	end   int
	score float64
}

// Find scores windows of the normalized document against the query and
// returns non-overlapping matches in original-document coordinates, ordered
// by position. Cancelling ctx stops candidate generation; whatever was
// accepted so far is still returned.
func Find(ctx context.Context, query string, doc *normalize.NormalizedDocument, opts Options) []core.SearchMatch {
	if query == "" || doc == nil || doc.Normalized == "" {
		return []core.SearchMatch{}
	}
	opts = withDefaults(opts)

	qRunes := []rune(normalize.Fold(query))
	text := doc.Normalized
	runeStarts := runeOffsets(text)
	textRunes := []rune(text)

	if len(textRunes) > largeDocumentRunes && len(qRunes) < shortQueryRunes {
		return []core.SearchMatch{}
	}

	score := scoreFunc(opts.Algorithm)
	tolerance := lengthTolerance(len(qRunes))

	var candidates []candidate
	scored := 0
	for wlen := len(qRunes) - tolerance; wlen <= len(qRunes)+tolerance; wlen++ {
		if wlen < 1 || wlen > len(textRunes) {
			continue
		}
		for pos := 0; pos+wlen <= len(textRunes); pos++ {
			if scored%cancelCheckInterval == 0 && ctx.Err() != nil {
				return finalize(filterOverlaps(candidates, opts.ReplaceThreshold), doc, opts)
			}
			scored++

			s := score(qRunes, textRunes[pos:pos+wlen])
			if s < opts.MinScore {
				continue
			}
			candidates = append(candidates, candidate{
				start: runeStarts[pos],
				end:   byteEnd(runeStarts, text, pos+wlen),
				score: s,
			})
		}
	}

	return finalize(filterOverlaps(candidates, opts.ReplaceThreshold), doc, opts)
}

// filterOverlaps sorts candidates by descending score and greedily accepts
// spans that do not overlap an already-accepted one.
func filterOverlaps(candidates []candidate, replaceThreshold float64) []candidate {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].start < candidates[j].start
	})

	var accepted []candidate
	for _, c := range candidates {
		accepted = accept(accepted, c, replaceThreshold)
	}
	return accepted
}

// accept merges a new candidate into the accepted set. A candidate that
// overlaps an accepted span is dropped unless it outscores it by the replace
// threshold, in which case it takes that span's place. filterOverlaps feeds
// candidates best-first, making the displacement branch a no-op there; it
// matters only for unordered input.
func accept(accepted []candidate, c candidate, replaceThreshold float64) []candidate {
	for i := range accepted {
		if c.end <= accepted[i].start || accepted[i].end <= c.start {
			continue
		}
		if c.score >= accepted[i].score*(1.0+replaceThreshold) {
			accepted[i] = c
		}
		return accepted
	}
	return append(accepted, c)
}

func finalize(accepted []candidate, doc *normalize.NormalizedDocument, opts Options) []core.SearchMatch {
	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].score != accepted[j].score {
			return accepted[i].score > accepted[j].score
		}
		return accepted[i].start < accepted[j].start
	})
	if len(accepted) > opts.MaxResults {
		accepted = accepted[:opts.MaxResults]
	}
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })

	matches := make([]core.SearchMatch, 0, len(accepted))
	for _, c := range accepted {
		origStart, origEnd := doc.OriginalSpan(c.start, c.end)
		matches = append(matches, core.SearchMatch{
			Start:      origStart,
			End:        origEnd,
			Text:       doc.Original[origStart:origEnd],
			Score:      c.score,
			Confidence: c.score,
			Algorithm:  opts.Algorithm,
			Context:    core.ContextAround(doc.Original, origStart, origEnd, opts.ContextLength),
		})
	}
	return matches
}

func withDefaults(opts Options) Options {
	if opts.Algorithm == core.AlgorithmUnspecified {
		opts.Algorithm = core.AlgorithmHybrid
	}
	if opts.MinScore <= 0 {
		opts.MinScore = DefaultMinScore
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.ContextLength < 0 {
		opts.ContextLength = DefaultContextLength
	}
	if opts.ReplaceThreshold <= 0 {
		opts.ReplaceThreshold = DefaultReplaceThreshold
	}
	return opts
}

func scoreFunc(alg core.Algorithm) func(a, b []rune) float64 {
	switch alg {
	case core.AlgorithmLevenshtein:
		return levenshteinScore
	case core.AlgorithmJaro:
		return jaro
	case core.AlgorithmJaroWinkler:
		return jaroWinkler
	default:
		return hybridScore
	}
}

func lengthTolerance(queryLen int) int {
	t := int(math.Ceil(0.3 * float64(queryLen)))
	if t > lengthToleranceCap {
		t = lengthToleranceCap
	}
	return t
}

// runeOffsets returns the byte offset of every rune start in s.
func runeOffsets(s string) []int {
	offs := make([]int, 0, len(s))
	for i := range s {
		offs = append(offs, i)
	}
	return offs
}

// byteEnd converts an exclusive rune index to an exclusive byte offset.
func byteEnd(runeStarts []int, s string, runeIdx int) int {
	if runeIdx >= len(runeStarts) {
		return len(s)
	}
	return runeStarts[runeIdx]
}
