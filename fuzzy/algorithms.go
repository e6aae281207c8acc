package fuzzy

// levenshteinScore converts edit distance to a similarity in [0,1]:
// 1 - distance/max(len(a), len(b)).
func levenshteinScore(a, b []rune) float64 {
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longer)
}

// levenshtein computes edit distance with a single rolling row, O(len(b))
// space.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cur := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			min := prev + cost
			if row[j]+1 < min {
				min = row[j] + 1
			}
			if row[j-1]+1 < min {
				min = row[j-1] + 1
			}
			row[j] = min
			prev = cur
		}
	}
	return row[len(b)]
}

// jaro computes the Jaro similarity: matched characters within half the
// longer length minus one, penalized by transpositions.
func jaro(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	window := len(a)
	if len(b) > window {
		window = len(b)
	}
	window = window/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, len(a))
	bMatched := make([]bool, len(b))
	matches := 0
	for i := range a {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > len(b) {
			hi = len(b)
		}
		for j := lo; j < hi; j++ {
			if bMatched[j] || a[i] != b[j] {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	j := 0
	for i := range a {
		if !aMatched[i] {
			continue
		}
		for !bMatched[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(len(a)) + m/float64(len(b)) + (m-t)/m) / 3
}

const (
	jaroWinklerPrefixLimit = 4
	jaroWinklerPrefixScale = 0.1
	jaroWinklerBoostFloor  = 0.7
)

// jaroWinkler boosts the Jaro score by a shared-prefix bonus, applied only
// when the base score reaches the boost floor.
func jaroWinkler(a, b []rune) float64 {
	j := jaro(a, b)
	if j < jaroWinklerBoostFloor {
		return j
	}

	prefix := 0
	for i := 0; i < len(a) && i < len(b) && i < jaroWinklerPrefixLimit; i++ {
		if a[i] != b[i] {
			break
		}
		prefix++
	}
	return j + float64(prefix)*jaroWinklerPrefixScale*(1.0-j)
}

const hybridShortQueryLimit = 10

// hybridScore blends Jaro-Winkler with the Levenshtein similarity. Short
// queries lean on Jaro-Winkler, which tolerates transpositions better;
// longer queries weight edit distance more evenly.
func hybridScore(query, candidate []rune) float64 {
	w := 0.5
	if len(query) <= hybridShortQueryLimit {
		w = 0.7
	}
	return w*jaroWinkler(query, candidate) + (1.0-w)*levenshteinScore(query, candidate)
}
