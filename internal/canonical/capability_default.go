//go:build !libpostal

package canonical

// DefaultExpander returns the pure-Go heuristic expander. Builds with the
// libpostal tag swap in the real libpostal binding.
func DefaultExpander() Expander { return heuristicExpander{} }

// DefaultParser returns the pure-Go heuristic parser.
func DefaultParser() Parser { return heuristicParser{} }
