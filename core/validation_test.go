package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMatch(t *testing.T) {
	doc := "Jan Novák, nar. 15.1.1994"

	t.Run("valid match", func(t *testing.T) {
		m := &SearchMatch{Start: 4, End: 10, Text: "Nová", Score: 1, Confidence: 1}
		m.End = 4 + len("Novák")
		m.Text = doc[m.Start:m.End]
		require.NoError(t, ValidateMatch(doc, m))
	})

	t.Run("nil match", func(t *testing.T) {
		err := ValidateMatch(doc, nil)
		assert.ErrorIs(t, err, ErrInvalidMatch)
	})

	t.Run("inverted range", func(t *testing.T) {
		m := &SearchMatch{Start: 10, End: 4, Text: "x"}
		assert.ErrorIs(t, ValidateMatch(doc, m), ErrInvalidRange)
	})

	t.Run("out of bounds", func(t *testing.T) {
		m := &SearchMatch{Start: 0, End: len(doc) + 1, Text: doc}
		assert.ErrorIs(t, ValidateMatch(doc, m), ErrInvalidRange)
	})

	t.Run("text mismatch", func(t *testing.T) {
		m := &SearchMatch{Start: 0, End: 3, Text: "Nov", Score: 1, Confidence: 1}
		assert.ErrorIs(t, ValidateMatch(doc, m), ErrTextMismatch)
	})

	t.Run("score out of range", func(t *testing.T) {
		m := &SearchMatch{Start: 0, End: 3, Text: "Jan", Score: 1.5, Confidence: 1}
		assert.ErrorIs(t, ValidateMatch(doc, m), ErrScoreOutOfRange)
	})
}

func TestClampRange(t *testing.T) {
	t.Run("inside", func(t *testing.T) {
		s, e := ClampRange(2, 5, 10)
		assert.Equal(t, 2, s)
		assert.Equal(t, 5, e)
	})

	t.Run("negative start", func(t *testing.T) {
		s, e := ClampRange(-3, 5, 10)
		assert.Equal(t, 0, s)
		assert.Equal(t, 5, e)
	})

	t.Run("end past limit", func(t *testing.T) {
		s, e := ClampRange(2, 50, 10)
		assert.Equal(t, 2, s)
		assert.Equal(t, 10, e)
	})

	t.Run("entirely outside collapses to empty", func(t *testing.T) {
		s, e := ClampRange(20, 30, 10)
		assert.Equal(t, s, e)
	})
}
