package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/pinpoint/core"
)

func sampleResults() []*core.SearchResult {
	return []*core.SearchResult{
		{
			Id:    core.IDFromContent("rodné číslo940115/1234"),
			Label: "rodné číslo",
			Value: "940115/1234",
			Type:  core.ValueTypeBirthNumber,
			Rank:  1,
			Score: 0.91,
			Matches: []core.SearchMatch{{
				Start:      31,
				End:        42,
				Text:       "940115/1234",
				Score:      0.95,
				Confidence: 0.95,
				Type:       core.ValueTypeBirthNumber,
				Algorithm:  core.AlgorithmPattern,
				Context:    "nar. 15.1.1994, RČ 940115/1234, kupní cena",
			}},
		},
		{
			Id:    core.IDFromContent("kupní cena"),
			Label: "kupní cena",
			Value: "7 850 000 Kč",
			Type:  core.ValueTypeAmount,
			Rank:  2,
			Score: 0.74,
		},
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	original := sampleResults()

	decoded, err := UnmarshalResults(MarshalResults(original))
	require.NoError(t, err)

	require.Len(t, decoded, len(original))
	for i := range original {
		assert.Equal(t, *original[i], *decoded[i])
	}
}

func TestSerializationEmpty(t *testing.T) {
	decoded, err := UnmarshalResults(MarshalResults(nil))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestSerializationCorruptInput(t *testing.T) {
	_, err := UnmarshalResults([]byte{0xff})
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	doc := "Jan Novák, RČ 940115/1234"

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t,
			Key(doc, "rodné číslo", core.ValueTypeBirthNumber),
			Key(doc, "rodné číslo", core.ValueTypeBirthNumber))
	})

	t.Run("document edit changes the key", func(t *testing.T) {
		assert.NotEqual(t,
			Key(doc, "rodné číslo", core.ValueTypeBirthNumber),
			Key(doc+" ", "rodné číslo", core.ValueTypeBirthNumber))
	})

	t.Run("hint changes the key", func(t *testing.T) {
		assert.NotEqual(t,
			Key(doc, "rodné číslo", core.ValueTypeBirthNumber),
			Key(doc, "rodné číslo", core.ValueTypeUnknown))
	})
}

func TestBadgerCache(t *testing.T) {
	ctx := context.Background()

	openTestCache := func(t *testing.T) *BadgerCache {
		t.Helper()
		c, err := OpenCache("", true)
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		return c
	}

	t.Run("set then get", func(t *testing.T) {
		c := openTestCache(t)
		key := Key("doc", "query", core.ValueTypeUnknown)

		require.NoError(t, c.SetResults(ctx, key, sampleResults(), time.Minute))

		got, err := c.GetResults(ctx, key)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "940115/1234", got[0].Value)
		assert.Equal(t, core.AlgorithmPattern, got[0].Matches[0].Algorithm)
	})

	t.Run("missing key", func(t *testing.T) {
		c := openTestCache(t)
		_, err := c.GetResults(ctx, Key("doc", "other", core.ValueTypeUnknown))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("zero ttl stores without expiry", func(t *testing.T) {
		c := openTestCache(t)
		key := Key("doc", "query", core.ValueTypeUnknown)
		require.NoError(t, c.SetResults(ctx, key, sampleResults(), 0))

		_, err := c.GetResults(ctx, key)
		assert.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		c := openTestCache(t)
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.GetResults(cancelled, Key("d", "q", core.ValueTypeUnknown))
		assert.Error(t, err)
	})

	t.Run("on disk", func(t *testing.T) {
		dir := t.TempDir()
		c, err := OpenCache(dir, false)
		require.NoError(t, err)
		defer c.Close()

		key := Key("doc", "query", core.ValueTypeUnknown)
		require.NoError(t, c.SetResults(ctx, key, sampleResults(), time.Minute))

		got, err := c.GetResults(ctx, key)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
