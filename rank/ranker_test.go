package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/pinpoint/core"
)

func result(label, value string, vt core.ValueType, confidence float64, start int) *core.SearchResult {
	return &core.SearchResult{
		Id:    core.IDFromContent(label + value),
		Label: label,
		Value: value,
		Type:  vt,
		Matches: []core.SearchMatch{{
			Start:      start,
			End:        start + len(value),
			Text:       value,
			Score:      confidence,
			Confidence: confidence,
			Type:       vt,
			Context:    "okolí hodnoty " + value + " v dokumentu",
		}},
	}
}

func TestWeights(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultWeights().Validate())
	})

	t.Run("sum must be one", func(t *testing.T) {
		w := DefaultWeights()
		w.Relevance = 0.5
		assert.ErrorIs(t, w.Validate(), ErrInvalidWeights)
	})

	t.Run("negative weight rejected", func(t *testing.T) {
		w := Weights{Relevance: 1.4, Confidence: -0.4, Freshness: 0}
		assert.ErrorIs(t, w.Validate(), ErrInvalidWeights)
	})

	t.Run("invalid weights fail construction", func(t *testing.T) {
		_, err := NewRanker(WithWeights(Weights{Relevance: 2}))
		assert.ErrorIs(t, err, ErrInvalidWeights)
	})
}

func TestRank(t *testing.T) {
	t.Run("relevant result outranks unrelated one", func(t *testing.T) {
		r, err := NewRanker()
		require.NoError(t, err)

		relevant := result("rodné číslo", "940115/1234", core.ValueTypeBirthNumber, 0.95, 20)
		unrelated := result("telefon", "602123456", core.ValueTypePhone, 0.8, 80)

		ranked := r.Rank([]*core.SearchResult{unrelated, relevant}, "rodné číslo")
		require.Len(t, ranked, 2)
		assert.Equal(t, "940115/1234", ranked[0].Value)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, 2, ranked[1].Rank)
	})

	t.Run("duplicate signatures collapse", func(t *testing.T) {
		r, err := NewRanker()
		require.NoError(t, err)

		a := result("rodné číslo", "940115/1234", core.ValueTypeBirthNumber, 0.95, 20)
		b := result("rodné číslo", "940115/1234", core.ValueTypeBirthNumber, 0.90, 20)

		ranked := r.Rank([]*core.SearchResult{a, b}, "rodné číslo")
		assert.Len(t, ranked, 1)
	})

	t.Run("clearly better duplicate displaces the held one", func(t *testing.T) {
		r, err := NewRanker()
		require.NoError(t, err)

		weak := result("částka", "7850000", core.ValueTypeAmount, 0.2, 10)
		weak.Matches[0].Context = ""
		strong := result("částka", "7850000", core.ValueTypeAmount, 1.0, 50)

		ranked := r.Rank([]*core.SearchResult{weak, strong}, "kupní cena částka")
		require.Len(t, ranked, 1)
		assert.Equal(t, 1.0, ranked[0].Confidence())
	})

	t.Run("tie broken by confidence then position", func(t *testing.T) {
		r, err := NewRanker(WithWeights(Weights{Confidence: 1}))
		require.NoError(t, err)

		early := result("a", "7850000", core.ValueTypeAmount, 0.9, 5)
		late := result("b", "602123456", core.ValueTypePhone, 0.9, 500)

		ranked := r.Rank([]*core.SearchResult{late, early}, "x")
		require.Len(t, ranked, 2)
		assert.Equal(t, "7850000", ranked[0].Value)
	})

	t.Run("truncates to max results", func(t *testing.T) {
		r, err := NewRanker(WithMaxResults(3))
		require.NoError(t, err)

		var candidates []*core.SearchResult
		values := []string{"111111", "222222", "333333", "444444", "555555"}
		for i, v := range values {
			candidates = append(candidates, result("v"+v, v, core.ValueTypeText, 0.5, i*10))
		}

		ranked := r.Rank(candidates, "hodnota")
		assert.Len(t, ranked, 3)
	})

	t.Run("empty input", func(t *testing.T) {
		r, err := NewRanker()
		require.NoError(t, err)
		assert.Empty(t, r.Rank(nil, "q"))
	})

	t.Run("feedback shifts the order", func(t *testing.T) {
		boostPhones := func(res *core.SearchResult) float64 {
			if res.Type == core.ValueTypePhone {
				return 1.0
			}
			return 0.0
		}
		r, err := NewRanker(
			WithWeights(Weights{Confidence: 0.5, Feedback: 0.5}),
			WithFeedback(boostPhones),
		)
		require.NoError(t, err)

		amount := result("částka", "7850000", core.ValueTypeAmount, 0.9, 5)
		phone := result("telefon", "602123456", core.ValueTypePhone, 0.9, 50)

		ranked := r.Rank([]*core.SearchResult{amount, phone}, "x")
		require.Len(t, ranked, 2)
		assert.Equal(t, core.ValueTypePhone, ranked[0].Type)
	})
}
