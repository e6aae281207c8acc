package fuzzy

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/pinpoint/core"
	"github.com/poiesic/pinpoint/normalize"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		dist int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"novak", "nowak", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.dist, levenshtein([]rune(tc.a), []rune(tc.b)), "%s vs %s", tc.a, tc.b)
	}

	assert.InDelta(t, 1.0-3.0/7.0, levenshteinScore([]rune("kitten"), []rune("sitting")), 1e-9)
	assert.Equal(t, 1.0, levenshteinScore(nil, nil))
}

func TestJaroFamily(t *testing.T) {
	t.Run("known jaro values", func(t *testing.T) {
		assert.InDelta(t, 0.944444, jaro([]rune("martha"), []rune("marhta")), 1e-5)
		assert.InDelta(t, 0.822222, jaro([]rune("dwayne"), []rune("duane")), 1e-5)
		assert.Equal(t, 1.0, jaro([]rune("abc"), []rune("abc")))
		assert.Equal(t, 0.0, jaro([]rune("abc"), []rune("xyz")))
	})

	t.Run("winkler prefix boost", func(t *testing.T) {
		assert.InDelta(t, 0.961111, jaroWinkler([]rune("martha"), []rune("marhta")), 1e-5)
		assert.InDelta(t, 0.840000, jaroWinkler([]rune("dwayne"), []rune("duane")), 1e-5)
	})

	t.Run("no boost below floor", func(t *testing.T) {
		a, b := []rune("abcdefgh"), []rune("abzzzzzz")
		assert.Equal(t, jaro(a, b), jaroWinkler(a, b))
	})
}

func TestHybridScore(t *testing.T) {
	t.Run("identity scores one", func(t *testing.T) {
		for _, q := range []string{"a", "rodné číslo", "a somewhat longer query string"} {
			assert.Equal(t, 1.0, hybridScore([]rune(q), []rune(q)), q)
		}
	})

	t.Run("bounded", func(t *testing.T) {
		s := hybridScore([]rune("novak"), []rune("nowak"))
		assert.Greater(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	})
}

func TestFind(t *testing.T) {
	ctx := context.Background()

	t.Run("exact occurrence scores one", func(t *testing.T) {
		doc := normalize.Normalize("Prodávající Jan Novák, bytem v Praze.")
		matches := Find(ctx, "novák", doc, DefaultOptions())
		require.NotEmpty(t, matches)
		best := matches[0]
		for _, m := range matches {
			if m.Score > best.Score {
				best = m
			}
		}
		assert.Equal(t, 1.0, best.Score)
		assert.Equal(t, "Novák", best.Text)
	})

	t.Run("typo tolerated", func(t *testing.T) {
		doc := normalize.Normalize("podpis pana Nowaka dne")
		matches := Find(ctx, "novak", doc, DefaultOptions())
		require.NotEmpty(t, matches)
		assert.Equal(t, doc.Original[matches[0].Start:matches[0].End], matches[0].Text)
	})

	t.Run("scores respect the floor and spans do not overlap", func(t *testing.T) {
		doc := normalize.Normalize("novak nowak novik navok")
		opts := DefaultOptions()
		opts.MinScore = 0.8
		matches := Find(ctx, "novak", doc, opts)
		require.NotEmpty(t, matches)
		for i, m := range matches {
			assert.GreaterOrEqual(t, m.Score, 0.8)
			assert.LessOrEqual(t, m.Score, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, m.Start, matches[i-1].End)
			}
		}
	})

	t.Run("empty inputs never error", func(t *testing.T) {
		doc := normalize.Normalize("text")
		assert.Empty(t, Find(ctx, "", doc, DefaultOptions()))
		assert.Empty(t, Find(ctx, "q", normalize.Normalize(""), DefaultOptions()))
		assert.Empty(t, Find(ctx, "q", nil, DefaultOptions()))
	})

	t.Run("short query against large document is rejected", func(t *testing.T) {
		doc := normalize.Normalize(strings.Repeat("a", largeDocumentRunes+1))
		assert.Empty(t, Find(ctx, "ab", doc, DefaultOptions()))
	})

	t.Run("cancellation stops candidate generation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		doc := normalize.Normalize(strings.Repeat("novak ", 200))
		assert.Empty(t, Find(cancelled, "novak", doc, DefaultOptions()))
	})

	t.Run("max results truncates", func(t *testing.T) {
		doc := normalize.Normalize(strings.Repeat("novak ", 30))
		opts := DefaultOptions()
		opts.MaxResults = 5
		matches := Find(ctx, "novak", doc, opts)
		assert.Len(t, matches, 5)
	})
}

// The replace threshold is a tuning knob, not a correctness invariant: this
// pins the wiring, not the particular constant.
func TestReplaceThreshold(t *testing.T) {
	kept := accept(nil, candidate{start: 0, end: 5, score: 0.80}, DefaultReplaceThreshold)

	t.Run("small advantage does not displace", func(t *testing.T) {
		out := accept(kept, candidate{start: 2, end: 7, score: 0.90}, DefaultReplaceThreshold)
		require.Len(t, out, 1)
		assert.Equal(t, 0, out[0].start)
	})

	t.Run("large advantage displaces", func(t *testing.T) {
		out := accept(kept, candidate{start: 2, end: 7, score: 0.97}, DefaultReplaceThreshold)
		require.Len(t, out, 1)
		assert.Equal(t, 2, out[0].start)
	})

	t.Run("disjoint span is appended", func(t *testing.T) {
		out := accept(kept, candidate{start: 10, end: 15, score: 0.5}, DefaultReplaceThreshold)
		assert.Len(t, out, 2)
	})
}

func TestFindMulti(t *testing.T) {
	ctx := context.Background()
	doc := normalize.Normalize("smlouvu podepsal Jan Novák osobně")

	matches := FindMulti(ctx, "novak", doc, DefaultWeights(), DefaultOptions())

	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Confidence, m.Score)
		assert.LessOrEqual(t, m.Confidence, 1.0)
	}

	// The exact span is found by both algorithms: its weighted score stays
	// 1.0 and agreement lifts its confidence to the cap.
	var exact *core.SearchMatch
	for i := range matches {
		if matches[i].Text == "Novák" {
			exact = &matches[i]
		}
	}
	require.NotNil(t, exact)
	assert.Equal(t, 1.0, exact.Confidence)
}
