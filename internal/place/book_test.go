package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "identical", a: "Paris, France", b: "Paris, France", want: 100},
		{name: "token order ignored", a: "France Paris,", b: "Paris, France", want: 100},
		{name: "case ignored", a: "PARIS, FRANCE", b: "paris, france", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "one empty", a: "", b: "Paris", want: 0},
		{name: "exactly ninety", a: "abcdefghij", b: "abcdefghix", want: 90},
		{name: "just below ninety", a: "abcdefghi", b: "abcdefghx", want: 89},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenSortRatio(tt.a, tt.b))
		})
	}
}

func TestAddExactMatchIncrementsUsage(t *testing.T) {
	b := NewBook()
	b.Add("Paris, France", nil)
	b.Add("Paris, France", nil)
	b.Add("Paris, France", nil)

	assert.Equal(t, 1, b.Len())
	loc := b.Lookup("Paris, France")
	require.NotNil(t, loc)
	assert.Equal(t, 3, loc.Used)
}

func TestAddExactMatchMergesExistingPreferred(t *testing.T) {
	b := NewBook()
	b.Add("Paris, France", &Location{Address: "Paris, France", CountryName: "France"})
	b.Add("Paris, France", &Location{Address: "Paris, France", CountryName: "Germany", Continent: "Europe"})

	loc := b.Lookup("Paris, France")
	require.NotNil(t, loc)
	assert.Equal(t, "France", loc.CountryName)
	assert.Equal(t, "Europe", loc.Continent)
	assert.Equal(t, 2, loc.Used)
}

func TestAddThresholdBoundary(t *testing.T) {
	b := NewBook()
	b.Add("abcdefghij", nil)
	b.Add("abcdefghix", nil) // score 90: folded into the existing key
	assert.Equal(t, 1, b.Len())
	assert.NotNil(t, b.Lookup("abcdefghij"))
	assert.Nil(t, b.Lookup("abcdefghix"))

	b = NewBook()
	b.Add("abcdefghi", nil)
	b.Add("abcdefghx", nil) // score 89: distinct entries
	assert.Equal(t, 2, b.Len())
}

func TestAddFuzzyMatchInheritsAltAndCanonical(t *testing.T) {
	b := NewBook()
	b.Add("abcdefghij", &Location{
		Address:       "abcdefghij",
		AltAddr:       "the real place",
		CanonicalAddr: "canonical form",
	})
	b.Add("abcdefghix", &Location{Address: "abcdefghix", CountryName: "France"})

	loc := b.Lookup("abcdefghij")
	require.NotNil(t, loc)
	assert.Equal(t, "France", loc.CountryName)
	assert.Equal(t, "the real place", loc.AltAddr)
	assert.Equal(t, "canonical form", loc.CanonicalAddr)
}

func TestAddNilRecordCreatesEmptyEntry(t *testing.T) {
	b := NewBook()
	b.Add("Lyon, France", nil)

	loc := b.Lookup("Lyon, France")
	require.NotNil(t, loc)
	assert.Equal(t, "Lyon, France", loc.Address)
	assert.Equal(t, 1, loc.Used)
	assert.False(t, loc.LatLon.IsValid())
}

func TestAddNilRecordKeepsFuzzyMatchedEntry(t *testing.T) {
	b := NewBook()
	b.Add("abcdefghij", &Location{
		Address:      "abcdefghij",
		LatLon:       NewLatLon(48.85, 2.35),
		CountryCode:  "FR",
		CountryName:  "France",
		FoundCountry: true,
		Used:         5,
	})

	// scores 90 against the seeded key but carries no record
	b.Add("abcdefghix", nil)

	require.Equal(t, 1, b.Len())
	loc := b.Lookup("abcdefghij")
	require.NotNil(t, loc)
	assert.True(t, loc.LatLon.IsValid())
	assert.Equal(t, "France", loc.CountryName)
	assert.True(t, loc.FoundCountry)
	assert.Equal(t, 5, loc.Used)
}

func TestLookupIsExactOnly(t *testing.T) {
	b := NewBook()
	b.Add("Paris, France", nil)
	assert.Nil(t, b.Lookup("paris, france"))
	assert.Nil(t, b.Lookup("Paris France"))
}

func TestDerivedIndices(t *testing.T) {
	b := NewBook()
	b.Add("London, England", &Location{
		Address:       "London, England",
		AltAddr:       "London, United Kingdom",
		CanonicalAddr: "london, england, united kingdom",
	})
	b.Add("Leeds, England", &Location{Address: "Leeds, England", AltAddr: "none"})
	b.Add("York, England", &Location{Address: "York, England"})

	assert.Equal(t, []string{"London, England"}, b.AddressesForAlt("London, United Kingdom"))
	assert.Equal(t, []string{"London, England"}, b.AddressesForCanonical("london, england, united kingdom"))
	assert.Equal(t, "london, england, united kingdom", b.CanonicalFor("London, England"))
	assert.Empty(t, b.CanonicalFor("York, England"))

	// empty and "none" never indexed
	assert.Empty(t, b.AddressesForAlt("none"))
	assert.Equal(t, []string{"London, United Kingdom"}, b.AltAddresses())
}

func TestIndexNeverDuplicatesKeys(t *testing.T) {
	b := NewBook()
	loc := &Location{Address: "London, England", AltAddr: "London, United Kingdom"}
	b.Add("London, England", loc)
	b.Add("London, England", loc)
	assert.Equal(t, []string{"London, England"}, b.AddressesForAlt("London, United Kingdom"))
}

func TestWithThreshold(t *testing.T) {
	b := NewBook(WithThreshold(80))
	b.Add("abcdefghi", nil)
	b.Add("abcdefghx", nil) // 89 clears a threshold of 80
	assert.Equal(t, 1, b.Len())
}
