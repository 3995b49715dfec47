package place

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultThreshold is the minimum token-sort similarity (0-100) at which two
// place strings are considered the same place.
const DefaultThreshold = 90

// Book is an in-memory index of place strings to location records. Inserts
// deduplicate near-identical strings by fuzzy match; lookups are exact-key
// only. Not safe for concurrent use.
type Book struct {
	addresses  map[string]*Location
	altIndex   map[string][]string
	canonIndex map[string][]string
	threshold  int
	log        *zap.Logger
}

// BookOption configures a Book.
type BookOption func(*Book)

// WithThreshold overrides the fuzzy-match acceptance threshold.
func WithThreshold(t int) BookOption {
	return func(b *Book) { b.threshold = t }
}

// WithBookLogger overrides the book's logger.
func WithBookLogger(log *zap.Logger) BookOption {
	return func(b *Book) { b.log = log }
}

// NewBook returns an empty address book with the default threshold.
func NewBook(opts ...BookOption) *Book {
	b := &Book{
		addresses:  make(map[string]*Location),
		altIndex:   make(map[string][]string),
		canonIndex: make(map[string][]string),
		threshold:  DefaultThreshold,
		log:        zap.L().With(zap.String("component", "book")),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add inserts loc under address, deduplicating against existing keys:
//
//   - exact key already present: the records merge (existing preferred) and
//     the usage counter advances by one;
//   - a different key matches at or above the threshold: loc is attached
//     under that key, inheriting its alternate and canonical addresses when
//     loc lacks them; a nil loc leaves the matched record untouched;
//   - no match: a brand-new entry under address (a nil loc becomes an empty
//     record carrying just the address).
func (b *Book) Add(address string, loc *Location) {
	existingKey, score := b.bestMatch(address)

	if existingKey != "" && score >= b.threshold {
		existing := b.addresses[existingKey]
		if existingKey == address {
			if loc == nil {
				b.log.Warn("exact match with no record; keeping existing",
					zap.String("address", address))
			}
			merged := existing.Merge(loc)
			merged.Used = existing.Used + 1
			b.store(existingKey, merged)
			return
		}
		if loc == nil {
			b.log.Warn("fuzzy match with no record; keeping existing",
				zap.String("address", address), zap.String("matched", existingKey))
			return
		}
		attached := *loc
		if attached.AltAddr == "" {
			attached.AltAddr = existing.AltAddr
		}
		if attached.CanonicalAddr == "" {
			attached.CanonicalAddr = existing.CanonicalAddr
			if len(attached.CanonicalParts) == 0 {
				attached.CanonicalParts = existing.CanonicalParts
			}
		}
		b.store(existingKey, &attached)
		return
	}

	if loc == nil {
		loc = NewLocation(address)
	}
	if loc.Used == 0 {
		loc.Used = 1
	}
	b.store(address, loc)
}

func (b *Book) store(key string, loc *Location) {
	b.addresses[key] = loc
	b.index(b.altIndex, loc.AltAddr, key)
	b.index(b.canonIndex, loc.CanonicalAddr, key)
}

// index appends key under val, skipping empty and the literal "none" and
// never duplicating a key in the list.
func (b *Book) index(idx map[string][]string, val, key string) {
	if val == "" || strings.EqualFold(val, "none") {
		return
	}
	for _, k := range idx[val] {
		if k == key {
			return
		}
	}
	idx[val] = append(idx[val], key)
}

// bestMatch scans every key for the highest token-sort similarity to
// address. An exact key wins immediately.
func (b *Book) bestMatch(address string) (string, int) {
	if _, ok := b.addresses[address]; ok {
		return address, 100
	}
	bestKey, bestScore := "", -1
	for key := range b.addresses {
		if score := TokenSortRatio(address, key); score > bestScore {
			bestKey, bestScore = key, score
		}
	}
	return bestKey, bestScore
}

// Update replaces the record stored at key without fuzzy matching,
// refreshing the derived indices. Meant for enriching an entry in place
// after resolution.
func (b *Book) Update(key string, loc *Location) {
	if loc == nil {
		return
	}
	b.store(key, loc)
}

// Lookup returns the record stored exactly under key, or nil. Fuzzy matching
// is an insert-time concern only.
func (b *Book) Lookup(key string) *Location {
	return b.addresses[key]
}

// Addresses exposes the primary map. Callers must not mutate it.
func (b *Book) Addresses() map[string]*Location {
	return b.addresses
}

// Keys returns the place strings currently in the book.
func (b *Book) Keys() []string {
	keys := make([]string, 0, len(b.addresses))
	for k := range b.addresses {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of entries.
func (b *Book) Len() int {
	return len(b.addresses)
}

// AddressesForAlt returns the place strings recorded under an alternate
// address.
func (b *Book) AddressesForAlt(altAddr string) []string {
	return b.altIndex[altAddr]
}

// AddressesForCanonical returns the place strings recorded under a canonical
// address.
func (b *Book) AddressesForCanonical(canonicalAddr string) []string {
	return b.canonIndex[canonicalAddr]
}

// CanonicalFor returns the canonical address indexed for a place string, or
// "" when none is recorded.
func (b *Book) CanonicalFor(address string) string {
	for canonical, keys := range b.canonIndex {
		for _, k := range keys {
			if k == address {
				return canonical
			}
		}
	}
	return ""
}

// AltAddresses returns every alternate address currently indexed.
func (b *Book) AltAddresses() []string {
	alts := make([]string, 0, len(b.altIndex))
	for a := range b.altIndex {
		alts = append(alts, a)
	}
	return alts
}
