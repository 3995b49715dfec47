//go:build libpostal

package canonical

import (
	expand "github.com/openvenues/gopostal/expand"
	parser "github.com/openvenues/gopostal/parser"
)

// DefaultExpander returns the libpostal-backed expander (cgo; requires the
// libpostal shared library and data files).
func DefaultExpander() Expander { return libpostalExpander{} }

// DefaultParser returns the libpostal-backed parser.
func DefaultParser() Parser { return libpostalParser{} }

type libpostalExpander struct{}

func (libpostalExpander) Expand(address string) []string {
	return expand.ExpandAddress(address)
}

type libpostalParser struct{}

func (libpostalParser) Parse(address string) []Component {
	parsed := parser.ParseAddress(address)
	out := make([]Component, 0, len(parsed))
	for _, c := range parsed {
		out = append(out, Component{Label: c.Label, Value: c.Value})
	}
	return out
}
