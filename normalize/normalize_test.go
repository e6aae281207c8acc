package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Diacritics(t *testing.T) {
	doc := Normalize("Jan Novák")
	assert.Equal(t, "jan novak", doc.Normalized)
	assert.Len(t, doc.IndexMap, len(doc.Normalized))

	// 'á' occupies two bytes in the original, one in the normalized form.
	start, end := doc.OriginalSpan(4, 9)
	assert.Equal(t, "Novák", doc.Original[start:end])
}

func TestNormalize_Empty(t *testing.T) {
	doc := Normalize("")
	assert.Equal(t, "", doc.Normalized)
	assert.Empty(t, doc.IndexMap)
	assert.Empty(t, doc.ReverseMap)

	s, e := doc.OriginalSpan(0, 5)
	assert.Equal(t, 0, s)
	assert.Equal(t, 0, e)
}

func TestNormalize_Markdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "**kupní cena** je", "kupni cena je"},
		{"italic", "cena *7 850 000* Kč", "cena 7 850 000 kc"},
		{"strikethrough", "~~stará~~ nová", "stara nova"},
		{"inline code", "číslo `940115/1234` zde", "cislo 940115/1234 zde"},
		{"header", "# Smlouva\ntext", "smlouva\ntext"},
		{"deep header", "### Článek III.\ntext", "clanek iii.\ntext"},
		{"list markers", "- první\n- druhý", "prvni\ndruhy"},
		{"ordered list", "1. první\n2. druhý", "prvni\ndruhy"},
		{"blockquote", "> citace", "citace"},
		{"link", "viz [Jan Novák](http://example.com) zde", "viz jan novak zde"},
		{"image", "![logo](x.png) text", "logo text"},
		{"escaped marker", `cena \*bez\* úprav`, "cena *bez* uprav"},
		{"snake case preserved", "proměnná birth_number zde", "promenna birth_number zde"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in).Normalized)
		})
	}
}

func TestNormalize_IndexMapMonotonic(t *testing.T) {
	docs := []string{
		"Jan Novák, nar. 15.1.1994, RČ 940115/1234, kupní cena 7 850 000 Kč.",
		"# Smlouva\n\n**Prodávající**: Ing. Věra Čermáková\n- IBAN: CZ65 0800 0000 1920 0014 5399\n",
		"příliš žluťoučký kůň úpěl ďábelské ódy",
		"plain ascii text, no markup at all",
	}

	for _, src := range docs {
		doc := Normalize(src)
		require.Len(t, doc.IndexMap, len(doc.Normalized))
		prev := -1
		for i, o := range doc.IndexMap {
			assert.GreaterOrEqual(t, o, prev, "index %d", i)
			assert.Less(t, o, len(src))
			prev = o
		}
	}
}

func TestNormalize_ReverseMap(t *testing.T) {
	src := "**ab**"
	doc := Normalize(src)
	require.Equal(t, "ab", doc.Normalized)

	// The emphasis markers did not survive normalization.
	assert.Nil(t, doc.NormalizedOffsets(0))
	assert.Nil(t, doc.NormalizedOffsets(1))
	assert.Equal(t, []int{0}, doc.NormalizedOffsets(2))
	assert.Equal(t, []int{1}, doc.NormalizedOffsets(3))
}

func TestNormalize_SpanRoundTrip(t *testing.T) {
	src := "Kupní cena činí 7 850 000 Kč."
	doc := Normalize(src)

	idx := strings.Index(doc.Normalized, "7 850 000")
	require.GreaterOrEqual(t, idx, 0)

	start, end := doc.OriginalSpan(idx, idx+len("7 850 000"))
	assert.Equal(t, "7 850 000", src[start:end])
}

func TestOriginalSpan_Clamping(t *testing.T) {
	doc := Normalize("abc")

	s, e := doc.OriginalSpan(-5, 2)
	assert.Equal(t, "ab", doc.Original[s:e])

	s, e = doc.OriginalSpan(1, 999)
	assert.Equal(t, "bc", doc.Original[s:e])

	// Entirely out of range collapses to an empty span instead of failing.
	s, e = doc.OriginalSpan(50, 60)
	assert.Equal(t, s, e)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "novak", Fold("Novák"))
	assert.Equal(t, "zluty kun", Fold("Žlutý KŮŇ"))
	assert.Equal(t, "", Fold(""))
	assert.Equal(t, "no diacritics", Fold("no diacritics"))
}
