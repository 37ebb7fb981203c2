// Package matcher maps free-text symptom descriptions to disease keys using a
// synonym-driven inverted index plus fuzzy string similarity.
package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after NFD decomposition, so "oído"
// and "oido" normalize to the same term.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar lower-cases, trims and removes diacritics. Characters the
// transform cannot handle are passed through unchanged; the function never
// fails on arbitrary Unicode input.
func Normalizar(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return folded
}

// Ratio is the normalized edit-distance similarity of two strings in [0, 1].
// Identical strings score 1; strings sharing no structure score near 0.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes the edit distance with a rolling single-row table.
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
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			ins := row[j-1] + 1
			del := row[j] + 1
			sub := prev + cost

			min := sub
			if ins < min {
				min = ins
			}
			if del < min {
				min = del
			}
			prev = row[j]
			row[j] = min
		}
	}
	return row[len(b)]
}
