// Package fuzzy scores how well a query matches a candidate title.
// Scores are case sensitive and based on difflib's SequenceMatcher ratio.
package fuzzy

import (
	"math"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio is the similarity of a and b in the range [0, 100].
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	return percent(difflib.NewMatcher(chars(a), chars(b)).Ratio())
}

// PartialRatio is the best Ratio between the shorter string and the windows of the
// longer one that line up with their matching blocks.
func PartialRatio(a, b string) int {
	if a == b {
		return 100
	}
	shorter, longer := chars(a), chars(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0
	}

	best := 0.0
	for _, block := range difflib.NewMatcher(shorter, longer).GetMatchingBlocks() {
		start := max(0, block.B-block.A)
		end := min(start+len(shorter), len(longer))
		r := difflib.NewMatcher(shorter, longer[start:end]).Ratio()
		if r > .995 {
			return 100
		}
		best = max(best, r)
	}
	return percent(best)
}

func chars(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

func percent(r float64) int {
	return int(math.RoundToEven(100 * r))
}
