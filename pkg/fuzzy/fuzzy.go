package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LevenshteinDistance calculates the edit distance between two strings
// This measures how many single-character edits (insertions, deletions, or substitutions)
// are required to change one string into another
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(normalizeString(s1))
	r2 := []rune(normalizeString(s2))

	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rolling rows are enough
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// Threshold is the typo tolerance for a query of the given length.
// Queries of two runes or fewer only match by substring or prefix.
func Threshold(query string) int {
	n := len([]rune(normalizeString(query)))
	switch {
	case n <= 2:
		return 0
	case n == 3:
		return 1
	case n >= 8:
		return 3
	default:
		return 2
	}
}

// Match checks if query fuzzy-matches text within a given threshold
// threshold is the maximum allowed edit distance
func Match(query, text string, threshold int) bool {
	query = normalizeString(query)
	text = normalizeString(text)

	if query == "" {
		return true
	}

	// If query is contained in text, it's a match
	if strings.Contains(text, query) {
		return true
	}

	// Check if any word in text fuzzy-matches the query
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) {
			return true
		}
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
	}

	// Multi-word queries are compared against the whole text
	if strings.Contains(query, " ") && len(text) < 50 {
		maxDistance := threshold + len(query)/5
		if LevenshteinDistance(query, text) <= maxDistance {
			return true
		}
	}

	return false
}

// MatchTitle reports whether a todo title matches a search query
func MatchTitle(query, title string) bool {
	return Match(query, title, Threshold(query))
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeString lowercases, strips diacritics and collapses whitespace
func normalizeString(s string) string {
	if folded, _, err := transform.String(accentStripper, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
