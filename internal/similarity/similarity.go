// Package similarity computes pairwise text similarity for the matching
// engine. The ratio is a symmetric LCS-based alignment measure:
// ratio(a,a)=1, ratio(a,b)=ratio(b,a), ratio(a,"")=0 for non-empty a.
package similarity

import (
	"strings"
	"unicode"
)

// Scorer computes similarity ratios over normalized text
type Scorer struct {
	threshold float64
}

// NewScorer creates a scorer with the given acceptance threshold
func NewScorer(threshold float64) *Scorer {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.6
	}
	return &Scorer{threshold: threshold}
}

// Threshold returns the acceptance threshold
func (s *Scorer) Threshold() float64 {
	return s.threshold
}

// Ratio computes the similarity of two texts after normalization
func (s *Scorer) Ratio(a, b string) float64 {
	return Ratio(Normalize(a), Normalize(b))
}

// Accepts reports whether a ratio clears the threshold
func (s *Scorer) Accepts(ratio float64) bool {
	return ratio >= s.threshold
}

// Normalize lowercases, strips non-word runes and collapses whitespace
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			// punctuation and symbols are dropped entirely
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Ratio returns 2*LCS(a,b) / (len(a)+len(b)) over runes, in [0,1]
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	lcs := lcsLength(ra, rb)
	return 2.0 * float64(lcs) / float64(len(ra)+len(rb))
}

// lcsLength computes the longest-common-subsequence length with a
// two-row dynamic program
func lcsLength(a, b []rune) int {
	// Keep the shorter sequence in the inner dimension
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
