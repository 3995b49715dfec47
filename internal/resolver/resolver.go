// Package resolver is the resolution orchestrator: given a place string it
// produces a resolved location record, consulting the persistent cache first
// and falling back to the geocoding provider with retry and progressive
// precision reduction.
package resolver

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gedtools/gedplace/internal/canonical"
	"github.com/gedtools/gedplace/internal/geocache"
	"github.com/gedtools/gedplace/internal/georef"
	"github.com/gedtools/gedplace/internal/place"
	"github.com/gedtools/gedplace/internal/resilience"
	"github.com/gedtools/gedplace/pkg/nominatim"
)

// DefaultMaxDepth is how many times the leading address segment may be
// dropped when the provider finds nothing.
const DefaultMaxDepth = 3

// Provider is the external geocoding capability.
type Provider interface {
	Geocode(ctx context.Context, address, countryCode string) (*nominatim.Result, error)
}

// Resolver ties the cache, the canonicalizer, the reference data and the
// provider together. Single-threaded by design: the provider enforces a
// per-caller rate limit, so all calls are serial and blocking.
type Resolver struct {
	store         geocache.Store
	provider      Provider
	canon         *canonical.Canonicalizer
	geo           *georef.Data
	log           *zap.Logger
	retry         resilience.RetryConfig
	maxDepth      int
	alwaysResolve bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithGeoData sets the country reference data.
func WithGeoData(geo *georef.Data) Option {
	return func(r *Resolver) { r.geo = geo }
}

// WithCanonicalizer sets the canonicalizer.
func WithCanonicalizer(c *canonical.Canonicalizer) Option {
	return func(r *Resolver) { r.canon = c }
}

// WithRetryConfig sets the provider retry policy.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(r *Resolver) { r.retry = cfg }
}

// WithMaxDepth sets the precision-reduction depth.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) { r.maxDepth = depth }
}

// WithAlwaysResolve bypasses the cache entirely: every place goes to the
// provider.
func WithAlwaysResolve(always bool) Option {
	return func(r *Resolver) { r.alwaysResolve = always }
}

// WithLogger overrides the resolver's logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// New builds a Resolver around a cache store and a provider.
func New(store geocache.Store, provider Provider, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		provider: provider,
		retry:    resilience.DefaultRetryConfig(),
		maxDepth: DefaultMaxDepth,
		log:      zap.L().With(zap.String("component", "resolver")),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.geo == nil {
		r.geo = georef.New()
	}
	if r.canon == nil {
		r.canon = canonical.New()
	}
	return r
}

// InferCountry inspects the text after the last comma: first the
// substitution table, then the country-name table (both case-insensitive).
// When neither matches and a default country is configured, the default is
// appended to the address. Returns the augmented lower-cased address, the
// country code and name, and whether the country was confidently
// identified.
func (r *Resolver) InferCountry(address string) (augmented, code, name string, found bool) {
	augmented = strings.ToLower(address)
	last := strings.TrimSpace(augmented[strings.LastIndex(augmented, ",")+1:])

	if sub, ok := r.geo.Substitution(last); ok {
		r.log.Info("substituting country name",
			zap.String("from", last), zap.String("to", sub))
		// the trailing element is the country; an earlier occurrence of the
		// same text (a street name, say) must stay as written
		if i := strings.LastIndex(augmented, last); i >= 0 {
			augmented = augmented[:i] + strings.ToLower(sub) + augmented[i+len(last):]
		}
		name = sub
		found = true
	}
	if match, ok := r.geo.NameMatch(last); ok {
		name = match
		found = true
	}
	if !found && r.geo.DefaultCountry() != "" {
		name = r.geo.DefaultCountry()
		augmented += ", " + strings.ToLower(name)
		r.log.Debug("appending default country",
			zap.String("address", address), zap.String("country", name))
	}
	code = r.geo.CodeForName(name)
	return augmented, code, name, found
}

// Resolve takes one place string to a terminal state: a resolved record, or
// nil when every fallback is exhausted. Failures never propagate — each
// place is independent of the rest of the batch.
func (r *Resolver) Resolve(ctx context.Context, placeStr string) *place.Location {
	if placeStr == "" {
		return nil
	}

	usePlace := placeStr
	var cacheEntry *place.Location
	if !r.alwaysResolve {
		usePlace, cacheEntry = r.store.Lookup(placeStr)
	}

	augmented, code, name, found := r.InferCountry(usePlace)
	canonicalStr, parts := r.canon.Canonical(usePlace, name)

	var loc *place.Location
	foundInCache := false
	if cacheEntry != nil && cacheEntry.LatLon.IsValid() {
		foundInCache = true
		loc = cacheEntry
		loc.CanonicalAddr = canonicalStr
		loc.CanonicalParts = parts
		// A record already confirmed as found_country keeps its country; a
		// fresh inference never downgrades confirmed knowledge.
		if !loc.FoundCountry {
			if found {
				r.log.Info("upgrading cached record with inferred country",
					zap.String("place", usePlace), zap.String("country", name))
				loc.FoundCountry = true
				loc.CountryCode = strings.ToUpper(code)
				loc.CountryName = name
				loc.Continent = r.geo.ContinentForCode(code)
				r.store.Put(placeStr, loc)
			} else {
				r.log.Debug("no country to add on cache hit",
					zap.String("place", usePlace))
			}
		}
	}

	if !foundInCache {
		loc = r.geocodeAddress(ctx, augmented, code, name, found, 0)
		if loc != nil {
			loc.Address = placeStr
			loc.CanonicalAddr = canonicalStr
			loc.CanonicalParts = parts
			r.store.Put(placeStr, loc)
			r.log.Info("geocoded place",
				zap.String("place", placeStr), zap.Stringer("lat_lon", loc.LatLon))
		}
	}

	if loc != nil {
		if c := strings.ToLower(strings.TrimSpace(loc.Continent)); c == "" || c == "none" {
			loc.Continent = r.geo.ContinentForCode(loc.CountryCode)
		}
	}
	return loc
}

// geocodeAddress calls the provider with retries; when nothing matches it
// drops the leading address segment and recurses, up to maxDepth levels of
// reduced precision.
func (r *Resolver) geocodeAddress(ctx context.Context, address, code, name string, foundCountry bool, depth int) *place.Location {
	if address == "" {
		return nil
	}

	cfg := r.retry
	cfg.OnRetry = resilience.RetryLogger("nominatim", "geocode")
	result, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) (*nominatim.Result, error) {
		return r.provider.Geocode(ctx, address, strings.ToLower(code))
	})
	if err != nil {
		r.log.Error("geocoding failed",
			zap.String("address", address), zap.Int("depth", depth), zap.Error(err))
	}

	var loc *place.Location
	if err == nil && result != nil && result.Matched {
		loc = &place.Location{
			Used:         1,
			LatLon:       place.NewLatLon(result.Latitude, result.Longitude),
			CountryCode:  strings.ToUpper(code),
			CountryName:  name,
			FoundCountry: foundCountry,
			Address:      result.DisplayName,
			Class:        result.Class,
			Type:         result.Type,
			Icon:         result.Icon,
			PlaceID:      result.PlaceID,
			Boundary:     result.BoundingBox,
			Importance:   result.Importance,
		}
	}

	if loc == nil && depth < r.maxDepth {
		if i := strings.Index(address, ","); i >= 0 {
			lessPrecise := strings.TrimSpace(address[i+1:])
			r.log.Info("retrying with less precision",
				zap.String("address", address), zap.String("reduced", lessPrecise))
			loc = r.geocodeAddress(ctx, lessPrecise, code, name, foundCountry, depth+1)
		}
	}
	return loc
}

// ResolveBook resolves every place in the book in sequence, merging results
// back into the book's records.
func (r *Resolver) ResolveBook(ctx context.Context, book *place.Book) Stats {
	stats := Stats{Places: book.Len()}
	for _, key := range book.Keys() {
		wasCached := !r.alwaysResolve && r.store.Has(key)
		loc := r.Resolve(ctx, key)
		if loc == nil {
			stats.Unresolved++
			continue
		}
		if wasCached {
			stats.Cached++
		} else {
			stats.Resolved++
		}
		existing := book.Lookup(key)
		merged := loc.Merge(existing)
		if existing != nil && existing.Used > 0 {
			merged.Used = existing.Used
		}
		book.Update(key, merged)
	}
	return stats
}

// Stats summarizes one ResolveBook pass.
type Stats struct {
	Places     int
	Cached     int
	Resolved   int
	Unresolved int
}

// Separate partitions a book into (cached, uncached) without resolving
// anything, so callers can report progress before the expensive part.
func (r *Resolver) Separate(book *place.Book) (*place.Book, *place.Book) {
	cached := place.NewBook()
	uncached := place.NewBook()
	for placeStr, loc := range book.Addresses() {
		if !r.alwaysResolve && r.store.Has(placeStr) {
			cached.Add(placeStr, loc)
		} else {
			uncached.Add(placeStr, loc)
		}
	}
	return cached, uncached
}
