package normalize

// stripMarkdown removes markdown syntax from text. It returns the stripped
// text and, for each byte of it, the offset of the byte it came from in the
// input. Runs in a single pass over the input.
func stripMarkdown(text string) (string, []int) {
	out := make([]byte, 0, len(text))
	offs := make([]int, 0, len(text))

	emit := func(b byte, orig int) {
		out = append(out, b)
		offs = append(offs, orig)
	}

	i := 0
	bol := true // at beginning of a line
	for i < len(text) {
		if bol {
			j := skipLineMarkers(text, i, emit)
			bol = false
			if j > i {
				i = j
				continue
			}
		}

		c := text[i]
		switch {
		case c == '\n':
			emit(c, i)
			i++
			bol = true

		case c == '\\' && i+1 < len(text) && isMarkdownPunct(text[i+1]):
			// Escaped marker: keep the literal character, drop the backslash.
			emit(text[i+1], i+1)
			i += 2

		case c == '`':
			i++ // inline code and fence delimiters carry no content

		case c == '*':
			i += markerRun(text, i, '*')

		case c == '_' && atWordBoundary(text, i, markerRun(text, i, '_')):
			i += markerRun(text, i, '_')

		case c == '~' && i+1 < len(text) && text[i+1] == '~':
			i += 2

		case c == '!' && i+1 < len(text) && text[i+1] == '[' && linkAhead(text, i+1):
			i++ // image marker; the '[' is handled on the next iteration

		case c == '[' && linkAhead(text, i):
			i++ // link text flows through the main loop

		case c == ']' && i+1 < len(text) && text[i+1] == '(':
			// Closing of link syntax: drop "](url)".
			j := i + 2
			for j < len(text) && text[j] != ')' && text[j] != '\n' {
				j++
			}
			if j < len(text) && text[j] == ')' {
				i = j + 1
			} else {
				emit(c, i)
				i++
			}

		default:
			emit(c, i)
			i++
		}
	}

	return string(out), offs
}

// skipLineMarkers consumes block-level markers at the start of a line:
// headers, blockquote markers, and unordered/ordered list markers.
// Leading indentation is emitted unchanged. Returns the new position.
func skipLineMarkers(text string, i int, emit func(byte, int)) int {
	// Emit leading indentation as-is.
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		emit(text[i], i)
		i++
	}

	// Blockquote markers, possibly nested ("> > ").
	for i < len(text) && text[i] == '>' {
		i++
		if i < len(text) && text[i] == ' ' {
			i++
		}
	}

	// Header markers: one to six '#' followed by a space.
	if i < len(text) && text[i] == '#' {
		j := i
		for j < len(text) && text[j] == '#' && j-i < 6 {
			j++
		}
		if j < len(text) && text[j] == ' ' {
			return j + 1
		}
	}

	// Unordered list markers: "-", "*", or "+" followed by a space.
	if i+1 < len(text) && (text[i] == '-' || text[i] == '*' || text[i] == '+') && text[i+1] == ' ' {
		return i + 2
	}

	// Ordered list markers: digits followed by ". ".
	j := i
	for j < len(text) && text[j] >= '0' && text[j] <= '9' {
		j++
	}
	if j > i && j+1 < len(text) && text[j] == '.' && text[j+1] == ' ' {
		return j + 2
	}

	return i
}

// markerRun counts a run of the marker byte c at position i, capped at 3.
// Runs longer than 3 are literal text (e.g. a horizontal rule of asterisks),
// but those are rare enough that stripping the first 3 is acceptable.
func markerRun(text string, i int, c byte) int {
	n := 0
	for i+n < len(text) && text[i+n] == c && n < 3 {
		n++
	}
	return n
}

// atWordBoundary reports whether the marker run at [i, i+run) touches a word
// boundary on either side. Underscores inside identifiers (snake_case) are
// not emphasis markers.
func atWordBoundary(text string, i, run int) bool {
	before := i == 0 || !isWordByte(text[i-1])
	after := i+run >= len(text) || !isWordByte(text[i+run])
	return before || after
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b >= 0x80 // multibyte runes count as word characters
}

// linkAhead reports whether text[i] == '[' opens link syntax, i.e. a ']('
// appears later on the same line with a closing ')'.
func linkAhead(text string, i int) bool {
	if i >= len(text) || text[i] != '[' {
		return false
	}
	j := i + 1
	for j < len(text) && text[j] != ']' && text[j] != '\n' {
		j++
	}
	if j >= len(text) || text[j] != ']' || j+1 >= len(text) || text[j+1] != '(' {
		return false
	}
	k := j + 2
	for k < len(text) && text[k] != ')' && text[k] != '\n' {
		k++
	}
	return k < len(text) && text[k] == ')'
}

func isMarkdownPunct(b byte) bool {
	switch b {
	case '*', '_', '`', '~', '[', ']', '(', ')', '#', '\\', '!', '-', '+', '.', '>':
		return true
	}
	return false
}
