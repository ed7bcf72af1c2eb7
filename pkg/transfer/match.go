package transfer

import "strings"

// significantWordLen is the minimum word length considered during whole-word
// matching. Shorter tokens ("of", "the", "&") carry too little signal to
// join on.
const significantWordLen = 3

// NamesMatch decides whether two free-text program names refer to the same
// program. It is intentionally lenient because wallet program names are
// user-entered, not from a closed vocabulary. Three tiers, in order:
// exact (case-insensitive), substring in either direction, and
// whole-significant-word subset in either direction. Deterministic and total.
func NamesMatch(a, b string) bool {
	na := normalizeName(a)
	nb := normalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return wordSubset(na, nb) || wordSubset(nb, na)
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// wordSubset reports whether every significant word of a appears as a word of
// b. Words shorter than significantWordLen are ignored on the a side; if a has
// no significant words at all, there is nothing to anchor a match on.
func wordSubset(a, b string) bool {
	bWords := make(map[string]bool)
	for _, w := range splitWords(b) {
		bWords[w] = true
	}

	matched := false
	for _, w := range splitWords(a) {
		if len(w) < significantWordLen {
			continue
		}
		if !bWords[w] {
			return false
		}
		matched = true
	}
	return matched
}

// splitWords breaks a normalized name on anything that is not a letter or
// digit, so "Miles&Smiles" and "Air France-KLM" split cleanly.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		default:
			return true
		}
	})
}
