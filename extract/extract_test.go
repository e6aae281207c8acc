package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/pinpoint/core"
)

func TestExtractBirthNumber(t *testing.T) {
	r := DefaultRegistry()

	t.Run("finds valid birth number", func(t *testing.T) {
		matches := r.Extract("RČ 940919/1022, dále jen kupující")
		require.Len(t, matches, 1)
		assert.Equal(t, core.ValueTypeBirthNumber, matches[0].Type)
		assert.Equal(t, "940919/1022", matches[0].Text)
		assert.Equal(t, core.AlgorithmPattern, matches[0].Algorithm)
		assert.InDelta(t, 0.95, matches[0].Confidence, 1e-9)
	})

	t.Run("offsets slice back to the text", func(t *testing.T) {
		text := "nar. 15.1.1994, RČ 940115/1234"
		matches := r.Extract(text)
		for _, m := range matches {
			assert.Equal(t, text[m.Start:m.End], m.Text)
		}
	})

	t.Run("rejects impossible month", func(t *testing.T) {
		matches := r.Extract("číslo 941319/1234 není rodné číslo")
		for _, m := range matches {
			assert.NotEqual(t, core.ValueTypeBirthNumber, m.Type)
		}
	})

	t.Run("short digit run is not matched", func(t *testing.T) {
		assert.Empty(t, r.Extract("odstavec 12345"))
	})
}

func TestExtractIBAN(t *testing.T) {
	r := DefaultRegistry()

	t.Run("valid czech iban", func(t *testing.T) {
		matches := r.Extract("účet IBAN CZ65 0800 0000 1920 0014 5399 vedený u banky")
		require.Len(t, matches, 1)
		assert.Equal(t, core.ValueTypeIBAN, matches[0].Type)
	})

	t.Run("checksum failure is dropped", func(t *testing.T) {
		matches := r.Extract("IBAN CZ66 0800 0000 1920 0014 5399")
		for _, m := range matches {
			assert.NotEqual(t, core.ValueTypeIBAN, m.Type)
		}
	})
}

func TestExtractBankAccount(t *testing.T) {
	r := DefaultRegistry()

	t.Run("prefixed account with known bank code", func(t *testing.T) {
		matches := r.Extract("na účet č. 19-2000145399/0800 do tří dnů")
		require.Len(t, matches, 1)
		assert.Equal(t, core.ValueTypeBankAccount, matches[0].Type)
		assert.Equal(t, "19-2000145399/0800", matches[0].Text)
	})

	t.Run("unknown bank code is dropped", func(t *testing.T) {
		matches := r.Extract("číslo 2000145399/9999")
		assert.Empty(t, matches)
	})
}

func TestExtractAmountsAndPercentages(t *testing.T) {
	r := DefaultRegistry()

	t.Run("grouped amount with currency", func(t *testing.T) {
		matches := r.Extract("kupní cena činí 7 850 000 Kč včetně DPH")
		require.Len(t, matches, 1)
		assert.Equal(t, core.ValueTypeAmount, matches[0].Type)
		assert.Equal(t, "7850000", r.CanonicalValue(core.ValueTypeAmount, matches[0].Text))
	})

	t.Run("decimal comma", func(t *testing.T) {
		assert.Equal(t, "1234.56", r.CanonicalValue(core.ValueTypeAmount, "1 234,56 Kč"))
	})

	t.Run("rpsn percentage", func(t *testing.T) {
		matches := r.Extract("RPSN činí 9,9 % ročně")
		require.Len(t, matches, 1)
		assert.Equal(t, core.ValueTypeRPSN, matches[0].Type)
	})
}

func TestExtractDates(t *testing.T) {
	r := DefaultRegistry()

	cases := []struct {
		name string
		text string
		want string
	}{
		{"numeric", "uzavřeno dne 15.1.1994 v Praze", "15.01.1994"},
		{"iso", "platnost od 2024-03-01", "01.03.2024"},
		{"czech month name", "podepsáno 1. ledna 2024", "01.01.2024"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matches := r.Extract(tc.text)
			require.Len(t, matches, 1)
			assert.Equal(t, core.ValueTypeDate, matches[0].Type)
			assert.Equal(t, tc.want, r.CanonicalValue(core.ValueTypeDate, matches[0].Text))
		})
	}
}

func TestExtractOverlapResolution(t *testing.T) {
	r := DefaultRegistry()

	// 940115/0800 is simultaneously a plausible birth number and a
	// mod-11-valid account at a known bank code. The higher prior wins.
	matches := r.Extract("identifikátor 940115/0800")
	require.Len(t, matches, 1)
	assert.Equal(t, core.ValueTypeBirthNumber, matches[0].Type)
}

func TestExtractEmpty(t *testing.T) {
	r := DefaultRegistry()
	assert.Empty(t, r.Extract(""))
	assert.Empty(t, r.Extract("žádné entity v tomto textu nejsou"))
}

func TestRegistryLookups(t *testing.T) {
	r := DefaultRegistry()

	t.Run("validate typed value", func(t *testing.T) {
		assert.True(t, r.ValidateValue(core.ValueTypeBirthNumber, "940919/1022"))
		assert.False(t, r.ValidateValue(core.ValueTypeBirthNumber, "999999/9999"))
	})

	t.Run("unknown type accepts non-empty", func(t *testing.T) {
		assert.True(t, r.ValidateValue(core.ValueTypeText, "anything"))
		assert.False(t, r.ValidateValue(core.ValueTypeText, ""))
	})

	t.Run("canonical falls back to input", func(t *testing.T) {
		assert.Equal(t, "abc", r.CanonicalValue(core.ValueTypeText, "abc"))
	})

	t.Run("confidence prior", func(t *testing.T) {
		assert.InDelta(t, 0.95, r.ConfidenceFor(core.ValueTypeIBAN), 1e-9)
		assert.InDelta(t, 0.5, r.ConfidenceFor(core.ValueTypeText), 1e-9)
	})
}
