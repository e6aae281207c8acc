package fuzzy

import (
	"context"
	"sort"

	"github.com/poiesic/pinpoint/core"
	"github.com/poiesic/pinpoint/normalize"
)

// agreementBonus is added to a merged match's confidence for every
// additional algorithm that found the same span.
const agreementBonus = 0.1

// DefaultWeights favors Jaro-Winkler slightly over raw edit distance.
func DefaultWeights() map[core.Algorithm]float64 {
	return map[core.Algorithm]float64{
		core.AlgorithmJaroWinkler: 0.6,
		core.AlgorithmLevenshtein: 0.4,
	}
}

// FindMulti runs several scoring algorithms over the same document and
// merges their results keyed by span. A merged match's score is the sum of
// the per-algorithm scores weighted by the (normalized) algorithm weights;
// its confidence is the best individual score boosted for every additional
// algorithm agreeing on the span, capped at 1.0.
func FindMulti(ctx context.Context, query string, doc *normalize.NormalizedDocument, weights map[core.Algorithm]float64, opts Options) []core.SearchMatch {
	if len(weights) == 0 {
		weights = DefaultWeights()
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return []core.SearchMatch{}
	}

	type span struct{ start, end int }
	merged := map[span]*core.SearchMatch{}
	weighted := map[span]float64{}
	agreement := map[span]int{}

	for alg, w := range weights {
		algOpts := opts
		algOpts.Algorithm = alg
		for _, m := range Find(ctx, query, doc, algOpts) {
			key := span{m.Start, m.End}
			agreement[key]++
			weighted[key] += m.Score * w / total

			if best, ok := merged[key]; ok {
				if m.Score > best.Score {
					best.Score = m.Score
					best.Algorithm = m.Algorithm
				}
				continue
			}
			kept := m
			merged[key] = &kept
		}
	}

	matches := make([]core.SearchMatch, 0, len(merged))
	for key, m := range merged {
		confidence := m.Score + agreementBonus*float64(agreement[key]-1)
		if confidence > 1.0 {
			confidence = 1.0
		}
		m.Confidence = confidence
		m.Score = weighted[key]
		matches = append(matches, *m)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].End < matches[j].End
	})
	return matches
}
