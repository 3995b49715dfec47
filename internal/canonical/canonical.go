// Package canonical turns free-text place strings into a stable canonical
// form: normalize, expand alternate phrasings, parse labeled components,
// keep the ordered address parts and join them back together. Pure
// computation; expansion and parsing are injected capabilities.
package canonical

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxVariants caps how many alternate phrasings are considered per
// address.
const DefaultMaxVariants = 8

// Expander produces alternate phrasings of an address (abbreviation
// expansion and similar). May return nothing.
type Expander interface {
	Expand(address string) []string
}

// Parser splits one address phrasing into labeled components.
type Parser interface {
	Parse(address string) []Component
}

// Component is one labeled address part, e.g. {Label: "city", Value:
// "springfield"}.
type Component struct {
	Label string
	Value string
}

// orderedLabels are the component labels that participate in the canonical
// string, in output order.
var orderedLabels = []string{
	"house_number", "road", "suburb", "city", "state", "postcode", "country",
}

// Canonicalizer computes canonical address forms.
type Canonicalizer struct {
	expander    Expander
	parser      Parser
	maxVariants int
	log         *zap.Logger
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer)

// WithExpander overrides the address-expansion capability.
func WithExpander(e Expander) Option {
	return func(c *Canonicalizer) { c.expander = e }
}

// WithParser overrides the address-parsing capability.
func WithParser(p Parser) Option {
	return func(c *Canonicalizer) { c.parser = p }
}

// WithMaxVariants overrides the variant cap.
func WithMaxVariants(n int) Option {
	return func(c *Canonicalizer) { c.maxVariants = n }
}

// WithLogger overrides the canonicalizer's logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Canonicalizer) { c.log = log }
}

// New returns a Canonicalizer backed by the build's default expander and
// parser (libpostal when built with the libpostal tag, a heuristic
// implementation otherwise).
func New(opts ...Option) *Canonicalizer {
	c := &Canonicalizer{
		expander:    DefaultExpander(),
		parser:      DefaultParser(),
		maxVariants: DefaultMaxVariants,
		log:         zap.L().With(zap.String("component", "canonical")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Canonical computes the canonical form of address. Every expansion variant
// is parsed into components; the winner is the variant carrying both a city
// and a country with the longest canonical string (ties keep the
// first-seen). When no variant has both, the canonical string is empty and
// the components come from the last-processed variant. A non-empty
// fallbackCountry fills a still-missing country in both outputs.
func (c *Canonicalizer) Canonical(address, fallbackCountry string) (string, map[string]string) {
	clean := Normalize(address)
	if clean == "" {
		return "", nil
	}

	variants := c.variants(clean)

	var (
		bestCanonical string
		bestParts     map[string]string
		bestLen       = -1
		lastParts     map[string]string
	)
	for _, variant := range variants {
		parts := c.parseParts(variant)
		parts, canonicalStr := c.canonicalizeParts(parts)
		lastParts = parts
		if parts["city"] != "" && parts["country"] != "" && len(canonicalStr) > bestLen {
			bestCanonical = canonicalStr
			bestParts = parts
			bestLen = len(canonicalStr)
		}
	}

	canonicalStr, parts := bestCanonical, bestParts
	if bestLen < 0 {
		canonicalStr, parts = "", lastParts
	}

	if parts != nil && parts["country"] == "" && fallbackCountry != "" {
		parts["country"] = fallbackCountry
		if canonicalStr != "" {
			canonicalStr += ", " + fallbackCountry
		}
	}
	return canonicalStr, parts
}

// variants asks the expander for alternate phrasings, capped at maxVariants,
// falling back to the input itself.
func (c *Canonicalizer) variants(clean string) []string {
	variants := c.expander.Expand(clean)
	if len(variants) > c.maxVariants {
		variants = variants[:c.maxVariants]
	}
	if len(variants) == 0 {
		variants = []string{clean}
	}
	return variants
}

// parseParts parses one variant and re-normalizes every component value.
// Later components win on duplicate labels.
func (c *Canonicalizer) parseParts(variant string) map[string]string {
	parts := make(map[string]string)
	for _, comp := range c.parser.Parse(variant) {
		parts[comp.Label] = Normalize(comp.Value)
	}
	return parts
}

// canonicalizeParts keeps the ordered non-empty components, replaces city
// and country with their longest expansion, and joins the de-duplicated
// values into the canonical string.
func (c *Canonicalizer) canonicalizeParts(parts map[string]string) (map[string]string, string) {
	kept := make(map[string]string, len(orderedLabels))
	for _, label := range orderedLabels {
		if v := parts[label]; v != "" {
			kept[label] = v
		}
	}
	if city := kept["city"]; city != "" {
		kept["city"] = c.longestExpansion(city)
	}
	if cn := kept["country"]; cn != "" {
		kept["country"] = c.longestExpansion(cn)
	}

	segments := make([]string, 0, len(orderedLabels))
	for _, label := range orderedLabels {
		v := kept[label]
		if v == "" {
			continue
		}
		dup := false
		for _, seen := range segments {
			if seen == v {
				dup = true
				break
			}
		}
		if !dup {
			segments = append(segments, v)
		}
	}
	return kept, strings.Join(segments, ", ")
}

// longestExpansion returns the longest expansion variant of a component
// value, first-seen winning ties.
func (c *Canonicalizer) longestExpansion(value string) string {
	best := Normalize(value)
	for _, v := range c.variants(best) {
		if len(v) > len(best) {
			best = v
		}
	}
	return best
}
