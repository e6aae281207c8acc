package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/pinpoint/core"
	"github.com/poiesic/pinpoint/normalize"
)

func TestFindExact(t *testing.T) {
	m, err := NewMatcher()
	require.NoError(t, err)

	t.Run("diacritic-insensitive hit maps to original text", func(t *testing.T) {
		doc := normalize.Normalize("Prodávající Jan Novák, bytem v Praze.")
		matches := m.FindExact("novak", doc, core.ValueTypeUnknown)
		require.Len(t, matches, 1)
		assert.Equal(t, "Novák", matches[0].Text)
		assert.Equal(t, doc.Original[matches[0].Start:matches[0].End], matches[0].Text)
		assert.Equal(t, core.AlgorithmExact, matches[0].Algorithm)
		assert.Equal(t, 1.0, matches[0].Score)
	})

	t.Run("all occurrences are reported", func(t *testing.T) {
		doc := normalize.Normalize("Novák prodává a Novák kupuje.")
		matches := m.FindExact("Novák", doc, core.ValueTypeUnknown)
		assert.Len(t, matches, 2)
	})

	t.Run("overlapping occurrences are reported", func(t *testing.T) {
		doc := normalize.Normalize("aaaa")
		matches := m.FindExact("aa", doc, core.ValueTypeUnknown)
		assert.Len(t, matches, 3)
	})

	t.Run("markdown emphasis does not block matching", func(t *testing.T) {
		doc := normalize.Normalize("kupní cena **7 850 000 Kč** celkem")
		matches := m.FindExact("7 850 000 Kč", doc, core.ValueTypeUnknown)
		require.Len(t, matches, 1)
		assert.Equal(t, "7 850 000 Kč", matches[0].Text)
	})

	t.Run("typed value query is canonicalized", func(t *testing.T) {
		doc := normalize.Normalize("RČ 940919/1022 uvedené výše")
		matches := m.FindExact("940919 / 1022", doc, core.ValueTypeBirthNumber)
		require.Len(t, matches, 1)
		assert.Equal(t, "940919/1022", matches[0].Text)
		assert.Equal(t, core.ValueTypeBirthNumber, matches[0].Type)
	})

	t.Run("label phrase is never returned typed", func(t *testing.T) {
		doc := normalize.Normalize("rodné číslo: 940919/1022")
		matches := m.FindExact("rodné číslo", doc, core.ValueTypeBirthNumber)
		assert.Empty(t, matches, "the phrase itself is not a birth number")

		matches = m.FindExact("rodné číslo", doc, core.ValueTypeUnknown)
		require.Len(t, matches, 1)
		assert.Equal(t, "rodné číslo", matches[0].Text)
		assert.Equal(t, core.ValueTypeUnknown, matches[0].Type)
	})

	t.Run("empty inputs", func(t *testing.T) {
		doc := normalize.Normalize("text")
		assert.Empty(t, m.FindExact("", doc, core.ValueTypeUnknown))
		assert.Empty(t, m.FindExact("q", normalize.Normalize(""), core.ValueTypeUnknown))
		assert.Empty(t, m.FindExact("q", nil, core.ValueTypeUnknown))
	})
}
