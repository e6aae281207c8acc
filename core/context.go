package core

import "unicode/utf8"

// ContextAround returns the text surrounding [start,end), padded by pad bytes
// on each side and clamped to the document bounds. Pad boundaries are moved
// outward to the nearest rune start so the context is always valid UTF-8.
func ContextAround(text string, start, end, pad int) string {
	if pad <= 0 || start < 0 || end > len(text) || start > end {
		return ""
	}

	from := start - pad
	if from < 0 {
		from = 0
	}
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}

	to := end + pad
	if to > len(text) {
		to = len(text)
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}

	return text[from:to]
}
