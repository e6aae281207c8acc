package rank

import (
	"strings"
	"unicode"

	"github.com/poiesic/pinpoint/core"
	"github.com/poiesic/pinpoint/normalize"
)

// Component weights inside the relevance score.
const (
	overlapWeight     = 0.6
	containmentWeight = 0.25
	contextHitWeight  = 0.15
)

// relevanceScore measures how well a result answers the query: lexical token
// overlap, substring containment between the folded query and value, and a
// bonus when query tokens appear in the match contexts.
func relevanceScore(r *core.SearchResult, query string) float64 {
	queryTokens := tokenizeAndFilter(query)
	if len(queryTokens) == 0 {
		return 0.0
	}

	resultTokens := tokenSet(r.Label + " " + r.Value)
	hits := 0
	for _, tok := range queryTokens {
		if resultTokens[tok] {
			hits++
		}
	}
	overlap := float64(hits) / float64(len(queryTokens))

	containment := 0.0
	foldedQuery := normalize.Fold(query)
	foldedValue := normalize.Fold(r.Value)
	foldedLabel := normalize.Fold(r.Label)
	if foldedValue != "" && (strings.Contains(foldedValue, foldedQuery) || strings.Contains(foldedQuery, foldedValue)) {
		containment = 1.0
	} else if foldedLabel != "" && strings.Contains(foldedLabel, foldedQuery) {
		containment = 1.0
	}

	contextHit := 0.0
	for _, m := range r.Matches {
		foldedCtx := normalize.Fold(m.Context)
		for _, tok := range queryTokens {
			if strings.Contains(foldedCtx, tok) {
				contextHit = 1.0
				break
			}
		}
		if contextHit > 0 {
			break
		}
	}

	return overlapWeight*overlap + containmentWeight*containment + contextHitWeight*contextHit
}

// contextScore rewards matches with substantial surrounding context and a
// high density of entity-bearing characters in it.
func contextScore(r *core.SearchResult) float64 {
	if len(r.Matches) == 0 {
		return 0.0
	}

	const fullContextLen = 96

	total := 0.0
	for _, m := range r.Matches {
		runes := []rune(m.Context)
		length := float64(len(runes)) / fullContextLen
		if length > 1.0 {
			length = 1.0
		}

		density := 0.0
		if len(runes) > 0 {
			digits := 0
			for _, c := range runes {
				if unicode.IsDigit(c) {
					digits++
				}
			}
			density = float64(digits) / float64(len(runes))
			if density > 1.0 {
				density = 1.0
			}
		}

		total += 0.7*length + 0.3*density
	}
	return total / float64(len(r.Matches))
}

// freshnessScore is constant: document text carries no source timestamps.
func freshnessScore(_ *core.SearchResult) float64 {
	return 1.0
}
