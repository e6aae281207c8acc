package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("options override defaults", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://example.test:9100"),
			WithModel("gpt-4o-mini"),
			WithMaxCandidates(20),
		)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://example.test:9100/v1", cfg.Host)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, 20, cfg.MaxCandidates)
	})

	t.Run("normalize appends v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("normalize keeps existing v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("missing host rejected", func(t *testing.T) {
		cfg := NewConfig(WithHost(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model rejected", func(t *testing.T) {
		cfg := NewConfig(WithModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("candidate cap bounds", func(t *testing.T) {
		assert.Error(t, NewConfig(WithMaxCandidates(0)).Validate())
		assert.Error(t, NewConfig(WithMaxCandidates(51)).Validate())
		assert.NoError(t, NewConfig(WithMaxCandidates(50)).Validate())
	})
}
