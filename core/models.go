package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ValueType classifies an extracted or searched-for value.
type ValueType int

const (
	// ValueTypeUnknown is the zero value; no type information is available.
	ValueTypeUnknown ValueType = iota
	// ValueTypeBirthNumber is a Czech birth number (rodné číslo), NNNNNN/NNN(N).
	ValueTypeBirthNumber
	// ValueTypeIBAN is an international bank account number.
	ValueTypeIBAN
	// ValueTypeBankAccount is a Czech domestic bank account, (prefix-)number/bankCode.
	ValueTypeBankAccount
	// ValueTypeAmount is a monetary amount with an optional currency.
	ValueTypeAmount
	// ValueTypeRPSN is an annual percentage rate (RPSN).
	ValueTypeRPSN
	// ValueTypeDate is a calendar date.
	ValueTypeDate
	// ValueTypePhone is a phone number.
	ValueTypePhone
	// ValueTypeName is a personal or company name.
	ValueTypeName
	// ValueTypeAddress is a postal address.
	ValueTypeAddress
	// ValueTypeText is free text with no specific format.
	ValueTypeText
)

var valueTypeNames = map[ValueType]string{
	ValueTypeUnknown:     "unknown",
	ValueTypeBirthNumber: "birthNumber",
	ValueTypeIBAN:        "iban",
	ValueTypeBankAccount: "bankAccount",
	ValueTypeAmount:      "amount",
	ValueTypeRPSN:        "rpsn",
	ValueTypeDate:        "date",
	ValueTypePhone:       "phone",
	ValueTypeName:        "name",
	ValueTypeAddress:     "address",
	ValueTypeText:        "text",
}

// String returns the canonical name of the value type.
func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseValueType converts a canonical type name back to a ValueType.
// Unrecognized names map to ValueTypeUnknown.
func ParseValueType(name string) ValueType {
	for t, n := range valueTypeNames {
		if n == name {
			return t
		}
	}
	return ValueTypeUnknown
}

// Algorithm identifies which matching strategy produced a SearchMatch.
type Algorithm int

const (
	// AlgorithmUnspecified is the zero value.
	AlgorithmUnspecified Algorithm = iota
	// AlgorithmExact is verified substring matching over normalized text.
	AlgorithmExact
	// AlgorithmLevenshtein is edit-distance similarity.
	AlgorithmLevenshtein
	// AlgorithmJaro is Jaro similarity.
	AlgorithmJaro
	// AlgorithmJaroWinkler is Jaro similarity with a shared-prefix bonus.
	AlgorithmJaroWinkler
	// AlgorithmHybrid is a weighted blend of Jaro-Winkler and Levenshtein.
	AlgorithmHybrid
	// AlgorithmPattern is regex-driven entity extraction.
	AlgorithmPattern
	// AlgorithmOracle is an externally supplied candidate verified positionally.
	AlgorithmOracle
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmExact:
		return "exact"
	case AlgorithmLevenshtein:
		return "levenshtein"
	case AlgorithmJaro:
		return "jaro"
	case AlgorithmJaroWinkler:
		return "jaroWinkler"
	case AlgorithmHybrid:
		return "hybrid"
	case AlgorithmPattern:
		return "pattern"
	case AlgorithmOracle:
		return "oracle"
	default:
		return "unspecified"
	}
}

// SearchMatch is a single located occurrence of a value in the original document.
// Start and End are byte offsets into the original, unmodified text, so that
// Text == original[Start:End] always holds for a valid match.
type SearchMatch struct {
	Start      int
	End        int
	Text       string
	Score      float64 // similarity score in [0,1]
	Confidence float64 // producer confidence in [0,1]
	Type       ValueType
	Algorithm  Algorithm
	Context    string // surrounding text, clamped to document bounds
}

// SearchResult groups one or more matches that support the same extracted value.
type SearchResult struct {
	Id      ID
	Label   string
	Value   string
	Type    ValueType
	Matches []SearchMatch
	Rank    int // 1-based position after ranking, 0 before
	Score   float64
}

// Position returns the earliest match start, used for tie-breaking.
// Returns -1 for a result with no matches.
func (r *SearchResult) Position() int {
	pos := -1
	for _, m := range r.Matches {
		if pos == -1 || m.Start < pos {
			pos = m.Start
		}
	}
	return pos
}

// Confidence returns the highest match confidence in the result.
func (r *SearchResult) Confidence() float64 {
	var c float64
	for _, m := range r.Matches {
		if m.Confidence > c {
			c = m.Confidence
		}
	}
	return c
}

// HighlightRange is a span of the original document to be visually marked.
// Ranges may overlap; the renderer resolves overlaps deterministically.
type HighlightRange struct {
	Start    int
	End      int
	Id       ID
	Type     ValueType
	Score    float64
	Priority int
}

// Segment is a run of document text with a highlight flag. Concatenating the
// Text of all segments emitted for a document reproduces the document exactly
// (modulo any escaping requested from the renderer).
type Segment struct {
	Text        string
	Highlighted bool
	Range       *HighlightRange // attribution for highlighted segments, nil otherwise
}
