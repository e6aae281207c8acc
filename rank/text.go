package rank

import (
	"strings"

	"github.com/poiesic/pinpoint/normalize"
)

// Stop words to filter out when scoring lexical overlap. Czech documents
// with occasional English boilerplate, so both lists apply. Entries are in
// folded (diacritic-free, lowercase) form.
var stopWords = map[string]bool{
	"a": true, "i": true, "v": true, "ve": true, "na": true, "se": true,
	"je": true, "s": true, "z": true, "ze": true, "do": true, "o": true,
	"k": true, "u": true, "za": true, "pro": true, "dle": true,
	"ktery": true, "ktera": true, "ktere": true, "tento": true, "tato": true,
	"toto": true, "jeho": true, "jeji": true, "byl": true, "byla": true,
	"bylo": true, "bude": true, "nebo": true, "aby": true, "tak": true,
	"the": true, "of": true, "and": true, "to": true, "in": true, "is": true,
	"for": true, "on": true, "with": true, "by": true, "at": true,
}

// tokenizeAndFilter splits text into words, folds case and diacritics, trims
// punctuation, and removes stop words.
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := normalize.Fold(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// tokenSet builds a membership set from tokenized text.
func tokenSet(text string) map[string]bool {
	tokens := tokenizeAndFilter(text)
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}
