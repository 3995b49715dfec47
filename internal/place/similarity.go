package place

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// TokenSortRatio scores how alike two strings are on a 0-100 scale,
// insensitive to token order: both sides are lower-cased, split on
// whitespace, token-sorted and rejoined before the edit distance is taken.
// Identical token multisets score 100.
func TokenSortRatio(a, b string) int {
	sa := tokenSort(a)
	sb := tokenSort(b)
	if sa == sb {
		return 100
	}
	longest := utf8.RuneCountInString(sa)
	if n := utf8.RuneCountInString(sb); n > longest {
		longest = n
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(sa, sb)
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}

func tokenSort(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
