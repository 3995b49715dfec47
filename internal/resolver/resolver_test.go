package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedtools/gedplace/internal/geocache"
	"github.com/gedtools/gedplace/internal/georef"
	"github.com/gedtools/gedplace/internal/place"
	"github.com/gedtools/gedplace/internal/resilience"
	"github.com/gedtools/gedplace/pkg/nominatim"
)

type stubProvider struct {
	fn        func(address, countryCode string) (*nominatim.Result, error)
	calls     int
	addresses []string
}

func (p *stubProvider) Geocode(_ context.Context, address, countryCode string) (*nominatim.Result, error) {
	p.calls++
	p.addresses = append(p.addresses, address)
	return p.fn(address, countryCode)
}

func matched(lat, lon float64, display string) *nominatim.Result {
	return &nominatim.Result{Latitude: lat, Longitude: lon, Matched: true, DisplayName: display}
}

func newTestStore(t *testing.T) *geocache.CSVStore {
	t.Helper()
	s := geocache.NewCSV(filepath.Join(t.TempDir(), "geo_cache.csv"))
	require.NoError(t, s.Load())
	return s
}

func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: 3, Interval: time.Millisecond}
}

func newTestResolver(t *testing.T, p Provider, opts ...Option) (*Resolver, *geocache.CSVStore) {
	t.Helper()
	store := newTestStore(t)
	base := []Option{WithRetryConfig(fastRetry())}
	return New(store, p, append(base, opts...)...), store
}

func TestInferCountry(t *testing.T) {
	geo := mustLoadGeo(t, `
country_substitutions:
  Prussia: Germany
default_country: United Kingdom
`)
	r, _ := newTestResolver(t, &stubProvider{}, WithGeoData(geo))

	tests := []struct {
		name          string
		address       string
		wantAugmented string
		wantCode      string
		wantName      string
		wantFound     bool
	}{
		{
			name:          "table match",
			address:       "Paris, France",
			wantAugmented: "paris, france",
			wantCode:      "FR",
			wantName:      "France",
			wantFound:     true,
		},
		{
			name:          "substitution",
			address:       "Danzig, Prussia",
			wantAugmented: "danzig, germany",
			wantCode:      "DE",
			wantName:      "Germany",
			wantFound:     true,
		},
		{
			name:          "substitution replaces trailing element only",
			address:       "Prussia Street, Prussia",
			wantAugmented: "prussia street, germany",
			wantCode:      "DE",
			wantName:      "Germany",
			wantFound:     true,
		},
		{
			name:          "default country appended",
			address:       "Little Whinging, Surrey",
			wantAugmented: "little whinging, surrey, united kingdom",
			wantCode:      "GB",
			wantName:      "United Kingdom",
			wantFound:     false,
		},
		{
			name:          "single segment matching a country",
			address:       "France",
			wantAugmented: "france",
			wantCode:      "FR",
			wantName:      "France",
			wantFound:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			augmented, code, name, found := r.InferCountry(tt.address)
			assert.Equal(t, tt.wantAugmented, augmented)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestInferCountryNoDefaultConfigured(t *testing.T) {
	r, _ := newTestResolver(t, &stubProvider{})

	augmented, code, name, found := r.InferCountry("Little Whinging, Surrey")
	assert.Equal(t, "little whinging, surrey", augmented)
	assert.Empty(t, code)
	assert.Empty(t, name)
	assert.False(t, found)
}

func TestResolveCacheHit(t *testing.T) {
	p := &stubProvider{fn: func(_, _ string) (*nominatim.Result, error) {
		return matched(1, 1, "should not be called"), nil
	}}
	r, store := newTestResolver(t, p)
	store.Put("Paris, France", &place.Location{
		Address: "Paris, France",
		LatLon:  place.NewLatLon(48.85, 2.35),
	})

	loc := r.Resolve(context.Background(), "Paris, France")
	require.NotNil(t, loc)
	assert.Equal(t, 0, p.calls, "cache hit must not call the provider")
	assert.InDelta(t, 48.85, *loc.LatLon.Lat, 1e-9)
	assert.NotEmpty(t, loc.CanonicalAddr)
}

func TestResolveCacheHitUpgradesCountry(t *testing.T) {
	p := &stubProvider{fn: func(_, _ string) (*nominatim.Result, error) {
		return nil, errors.New("unused")
	}}
	r, store := newTestResolver(t, p)
	store.Put("Paris, France", &place.Location{
		Address: "Paris, France",
		LatLon:  place.NewLatLon(48.85, 2.35),
	})

	loc := r.Resolve(context.Background(), "Paris, France")
	require.NotNil(t, loc)
	assert.True(t, loc.FoundCountry)
	assert.Equal(t, "FR", loc.CountryCode)
	assert.Equal(t, "France", loc.CountryName)
	assert.Equal(t, "Europe", loc.Continent)

	// the upgrade is the one cache-hit case that writes back
	_, entry := store.Lookup("Paris, France")
	require.NotNil(t, entry)
	assert.True(t, entry.FoundCountry)
}

func TestResolveCacheHitConfirmedCountryIsAuthoritative(t *testing.T) {
	p := &stubProvider{}
	r, store := newTestResolver(t, p)
	store.Put("Alsace, France", &place.Location{
		Address:      "Alsace, France",
		LatLon:       place.NewLatLon(48.3, 7.4),
		CountryCode:  "DE",
		CountryName:  "Germany",
		Continent:    "Europe",
		FoundCountry: true,
	})

	loc := r.Resolve(context.Background(), "Alsace, France")
	require.NotNil(t, loc)
	assert.Equal(t, "Germany", loc.CountryName)
	assert.Equal(t, "DE", loc.CountryCode)
	assert.Equal(t, 0, p.calls)
}

func TestResolveCacheEntryWithoutCoordinatesIsAMiss(t *testing.T) {
	p := &stubProvider{fn: func(_, _ string) (*nominatim.Result, error) {
		return matched(48.85, 2.35, "Paris, Ile-de-France, France"), nil
	}}
	r, store := newTestResolver(t, p)
	store.Put("Paris, France", &place.Location{Address: "Paris, France"})

	loc := r.Resolve(context.Background(), "Paris, France")
	require.NotNil(t, loc)
	assert.Equal(t, 1, p.calls)
	assert.True(t, loc.LatLon.IsValid())
}

func TestResolveMissGeocodesAndCachesUnderOriginalKey(t *testing.T) {
	p := &stubProvider{fn: func(_, code string) (*nominatim.Result, error) {
		assert.Equal(t, "fr", code)
		return matched(48.85, 2.35, "Paris, Ile-de-France, France"), nil
	}}
	r, store := newTestResolver(t, p)

	loc := r.Resolve(context.Background(), "Paris, France")
	require.NotNil(t, loc)
	assert.Equal(t, 1, p.calls)
	// record carries the original place string, not the display name
	assert.Equal(t, "Paris, France", loc.Address)
	assert.Equal(t, "FR", loc.CountryCode)
	assert.Equal(t, "Europe", loc.Continent)
	assert.True(t, store.Has("Paris, France"))
}

func TestResolveRetriesTransientErrors(t *testing.T) {
	calls := 0
	p := &stubProvider{fn: func(_, _ string) (*nominatim.Result, error) {
		calls++
		if calls < 3 {
			return nil, resilience.NewTransientError(errors.New("overloaded"), 503)
		}
		return matched(48.85, 2.35, "Paris"), nil
	}}
	r, _ := newTestResolver(t, p)

	loc := r.Resolve(context.Background(), "Paris, France")
	require.NotNil(t, loc)
	assert.Equal(t, 3, p.calls)
}

func TestResolveExhaustedRetriesIsUnresolved(t *testing.T) {
	p := &stubProvider{fn: func(_, _ string) (*nominatim.Result, error) {
		return nil, resilience.NewTransientError(errors.New("overloaded"), 503)
	}}
	r, _ := newTestResolver(t, p, WithMaxDepth(0))

	loc := r.Resolve(context.Background(), "Paris, France")
	assert.Nil(t, loc)
	assert.Equal(t, 3, p.calls, "exactly MaxAttempts provider calls")
}

func TestResolvePrecisionReduction(t *testing.T) {
	p := &stubProvider{fn: func(address, _ string) (*nominatim.Result, error) {
		if strings.Count(address, ",") <= 1 {
			return matched(39.78, -89.65, "Illinois, United States"), nil
		}
		return &nominatim.Result{Matched: false}, nil
	}}
	r, store := newTestResolver(t, p)

	loc := r.Resolve(context.Background(), "123 Elm St, Springfield, Illinois, USA")
	require.NotNil(t, loc)
	require.True(t, loc.LatLon.IsValid())
	assert.InDelta(t, 39.78, *loc.LatLon.Lat, 1e-9)

	// full, then two reduced calls: 4 -> 3 -> 2 segments
	require.Len(t, p.addresses, 3)
	assert.Equal(t, "123 elm st, springfield, illinois, usa", p.addresses[0])
	assert.Equal(t, "springfield, illinois, usa", p.addresses[1])
	assert.Equal(t, "illinois, usa", p.addresses[2])

	// cached under the original, full-precision key
	assert.True(t, store.Has("123 Elm St, Springfield, Illinois, USA"))
}

func TestResolvePrecisionExhaustionIsUnresolved(t *testing.T) {
	p := &stubProvider{fn: func(_, _ string) (*nominatim.Result, error) {
		return &nominatim.Result{Matched: false}, nil
	}}
	r, _ := newTestResolver(t, p)

	loc := r.Resolve(context.Background(), "a, b, c, d, e")
	assert.Nil(t, loc)
	// initial call plus maxDepth reductions
	assert.Equal(t, 4, p.calls)
}

func TestResolveContinentBackfill(t *testing.T) {
	p := &stubProvider{fn: func(_, _ string) (*nominatim.Result, error) {
		return matched(1, 1, "somewhere"), nil
	}}

	// unknown country: continent degrades to Unknown
	r, _ := newTestResolver(t, p)
	loc := r.Resolve(context.Background(), "Somewhere Odd")
	require.NotNil(t, loc)
	assert.Equal(t, georef.ContinentUnknown, loc.Continent)

	// fallback map consulted for codes the table cannot place
	geo := mustLoadGeo(t, `
additional_countries_codes_dict_to_add:
  Kosovo: XK
fallback_continent_map:
  XK: Europe
`)
	r2, _ := newTestResolver(t, p, WithGeoData(geo))
	loc = r2.Resolve(context.Background(), "Pristina, Kosovo")
	require.NotNil(t, loc)
	assert.Equal(t, "Europe", loc.Continent)
}

func TestResolveAlwaysResolveBypassesCache(t *testing.T) {
	p := &stubProvider{fn: func(_, _ string) (*nominatim.Result, error) {
		return matched(48.85, 2.35, "Paris"), nil
	}}
	r, store := newTestResolver(t, p, WithAlwaysResolve(true))
	store.Put("Paris, France", &place.Location{
		Address: "Paris, France",
		LatLon:  place.NewLatLon(0, 0),
	})

	loc := r.Resolve(context.Background(), "Paris, France")
	require.NotNil(t, loc)
	assert.Equal(t, 1, p.calls)
	assert.InDelta(t, 48.85, *loc.LatLon.Lat, 1e-9)
}

func TestResolveEmptyPlace(t *testing.T) {
	p := &stubProvider{}
	r, _ := newTestResolver(t, p)
	assert.Nil(t, r.Resolve(context.Background(), ""))
	assert.Equal(t, 0, p.calls)
}

func TestSeparate(t *testing.T) {
	r, store := newTestResolver(t, &stubProvider{})
	store.Put("Paris, France", &place.Location{
		Address: "Paris, France",
		LatLon:  place.NewLatLon(48.85, 2.35),
	})

	book := place.NewBook()
	book.Add("Paris, France", nil)
	book.Add("Lyon, France", nil)

	cached, uncached := r.Separate(book)
	assert.Equal(t, 1, cached.Len())
	assert.Equal(t, 1, uncached.Len())
	assert.NotNil(t, cached.Lookup("Paris, France"))
	assert.NotNil(t, uncached.Lookup("Lyon, France"))
}

func TestResolveBook(t *testing.T) {
	p := &stubProvider{fn: func(address, _ string) (*nominatim.Result, error) {
		if strings.Contains(address, "lyon") {
			return matched(45.76, 4.83, "Lyon, France"), nil
		}
		return &nominatim.Result{Matched: false}, nil
	}}
	r, store := newTestResolver(t, p, WithMaxDepth(0))
	store.Put("Paris, France", &place.Location{
		Address: "Paris, France",
		LatLon:  place.NewLatLon(48.85, 2.35),
	})

	book := place.NewBook()
	book.Add("Paris, France", nil)
	book.Add("Paris, France", nil)
	book.Add("Lyon, France", nil)
	book.Add("Atlantis", nil)

	stats := r.ResolveBook(context.Background(), book)
	assert.Equal(t, 3, stats.Places)
	assert.Equal(t, 1, stats.Cached)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 1, stats.Unresolved)

	// usage survives the merge back into the book
	paris := book.Lookup("Paris, France")
	require.NotNil(t, paris)
	assert.Equal(t, 2, paris.Used)
	assert.True(t, paris.LatLon.IsValid())

	lyon := book.Lookup("Lyon, France")
	require.NotNil(t, lyon)
	assert.True(t, lyon.LatLon.IsValid())

	assert.False(t, book.Lookup("Atlantis").LatLon.IsValid())
}

func mustLoadGeo(t *testing.T, doc string) *georef.Data {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geo_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	geo, err := georef.Load(path)
	require.NoError(t, err)
	return geo
}
