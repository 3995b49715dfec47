package canonical

import (
	"strings"
	"unicode"
)

// heuristicExpander is the pure-Go expansion fallback: the lower-cased input
// plus, when any known abbreviations occur, a variant with them spelled out.
// Thoroughness is libpostal's job (build tag libpostal); this only has to
// cover the abbreviations common in genealogical place strings.
type heuristicExpander struct{}

var roadAbbrev = map[string]string{
	"st":   "street",
	"rd":   "road",
	"ave":  "avenue",
	"av":   "avenue",
	"dr":   "drive",
	"ln":   "lane",
	"blvd": "boulevard",
	"ct":   "court",
	"pl":   "place",
	"sq":   "square",
	"mt":   "mount",
	"ft":   "fort",
}

var regionAbbrev = map[string]string{
	"usa": "united states of america",
	"us":  "united states of america",
	"uk":  "united kingdom",
	"gb":  "united kingdom",
	"nz":  "new zealand",
	"co":  "county",
}

func (heuristicExpander) Expand(address string) []string {
	lower := strings.ToLower(address)
	variants := []string{lower}
	if v := expandTokens(lower, roadAbbrev); v != lower {
		variants = append(variants, v)
	}
	if v := expandTokens(lower, regionAbbrev); v != lower {
		variants = append(variants, v)
	}
	if v := expandTokens(expandTokens(lower, roadAbbrev), regionAbbrev); v != lower && !contains(variants, v) {
		variants = append(variants, v)
	}
	return variants
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// expandTokens replaces each whitespace token whose core (trailing "." and
// "," stripped) is in the table, keeping any trailing comma.
func expandTokens(s string, table map[string]string) string {
	tokens := strings.Fields(s)
	changed := false
	for i, tok := range tokens {
		core := strings.TrimRight(tok, ".,")
		suffix := ""
		if strings.HasSuffix(tok, ",") {
			suffix = ","
		}
		if full, ok := table[core]; ok {
			tokens[i] = full + suffix
			changed = true
		}
	}
	if !changed {
		return s
	}
	return strings.Join(tokens, " ")
}

// heuristicParser labels comma-separated segments by position from the
// right: country, then state, then city. A leading segment that starts with
// a digit splits into house number and road; other leftover segments in the
// middle become suburbs.
type heuristicParser struct{}

func (heuristicParser) Parse(address string) []Component {
	raw := strings.Split(address, ",")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	n := len(segments)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []Component{{Label: "city", Value: segments[0]}}
	}

	labels := make([]string, n)
	labels[n-1] = "country"
	if n == 2 {
		labels[0] = "city"
	} else {
		labels[n-2] = "state"
		labels[n-3] = "city"
	}
	for i := 0; i < n-3; i++ {
		labels[i] = "suburb"
	}
	if n >= 4 && startsWithDigit(segments[0]) {
		labels[0] = "house_number"
	}

	out := make([]Component, 0, n+1)
	for i, seg := range segments {
		if labels[i] == "house_number" {
			num, road := splitHouseNumber(seg)
			out = append(out, Component{Label: "house_number", Value: num})
			if road != "" {
				out = append(out, Component{Label: "road", Value: road})
			}
			continue
		}
		out = append(out, Component{Label: labels[i], Value: seg})
	}
	return out
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

func splitHouseNumber(s string) (string, string) {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}
