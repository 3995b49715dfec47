package canonical

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	punctRe = regexp.MustCompile(`[,;]+`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Normalize transliterates to a plain character set (decompose, strip
// combining marks, recompose), trims, folds comma/semicolon runs to a single
// comma and collapses whitespace runs.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	s = strings.TrimSpace(s)
	s = punctRe.ReplaceAllString(s, ",")
	s = spaceRe.ReplaceAllString(s, " ")
	return s
}
