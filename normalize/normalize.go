package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizedDocument is the search-friendly view of a document paired with a
// bidirectional coordinate mapping. It is immutable after construction and
// must be rebuilt whenever the source text changes.
type NormalizedDocument struct {
	// Original is the unmodified source text.
	Original string

	// Normalized is the markdown-stripped, diacritic-folded, lowercased text.
	Normalized string

	// IndexMap maps each byte offset of Normalized to the offset of the
	// original byte (rune start) it derives from. len(IndexMap) equals
	// len(Normalized) and values are monotonically non-decreasing.
	IndexMap []int

	// ReverseMap maps an original rune-start offset to the normalized
	// offsets derived from it. A missing key means the original character
	// did not survive normalization (e.g. a stripped markdown delimiter).
	ReverseMap map[int][]int
}

// Normalize builds a NormalizedDocument from text. It never fails; empty
// input yields a well-formed empty document. Construction is linear in the
// document length.
func Normalize(text string) *NormalizedDocument {
	doc := &NormalizedDocument{
		Original:   text,
		IndexMap:   []int{},
		ReverseMap: map[int][]int{},
	}
	if text == "" {
		return doc
	}

	stripped, offs := stripMarkdown(text)

	var b strings.Builder
	b.Grow(len(stripped))
	indexMap := make([]int, 0, len(stripped))

	for i := 0; i < len(stripped); {
		r, size := utf8.DecodeRuneInString(stripped[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid byte: pass through so the mapping stays total.
			orig := offs[i]
			doc.ReverseMap[orig] = append(doc.ReverseMap[orig], b.Len())
			b.WriteByte(stripped[i])
			indexMap = append(indexMap, orig)
			i++
			continue
		}

		orig := offs[i]
		for _, dr := range norm.NFD.String(stripped[i : i+size]) {
			if unicode.Is(unicode.Mn, dr) {
				continue
			}
			lr := unicode.ToLower(dr)
			doc.ReverseMap[orig] = append(doc.ReverseMap[orig], b.Len())
			b.WriteRune(lr)
			for n := utf8.RuneLen(lr); n > 0; n-- {
				indexMap = append(indexMap, orig)
			}
		}
		i += size
	}

	doc.Normalized = b.String()
	doc.IndexMap = indexMap
	return doc
}

// Fold applies diacritic folding and lowercasing without markdown stripping.
// It is used to canonicalize queries and values for comparison.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// OriginalSpan converts a [start,end) span in normalized coordinates to the
// corresponding span in the original text. Out-of-range offsets are clamped
// to the nearest valid bound rather than failing, so slightly stale ranges
// degrade gracefully.
func (d *NormalizedDocument) OriginalSpan(start, end int) (int, int) {
	if len(d.IndexMap) == 0 {
		return 0, 0
	}
	if start < 0 {
		start = 0
	}
	if end > len(d.IndexMap) {
		end = len(d.IndexMap)
	}
	if start >= end {
		if start >= len(d.IndexMap) {
			start = len(d.IndexMap) - 1
		}
		o := d.IndexMap[start]
		return o, o
	}

	origStart := d.IndexMap[start]
	last := d.IndexMap[end-1]
	_, size := utf8.DecodeRuneInString(d.Original[last:])
	if size == 0 {
		size = 1
	}
	return origStart, last + size
}

// NormalizedOffsets returns the normalized offsets derived from the original
// offset, or nil if the original character did not survive normalization.
func (d *NormalizedDocument) NormalizedOffsets(orig int) []int {
	return d.ReverseMap[orig]
}
