package summary

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedtools/gedplace/internal/place"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func testBook() *place.Book {
	b := place.NewBook()
	b.Add("Paris, France", &place.Location{
		Address:       "Paris, France",
		LatLon:        place.NewLatLon(48.85, 2.35),
		CountryCode:   "FR",
		CountryName:   "France",
		Continent:     "Europe",
		FoundCountry:  true,
		CanonicalAddr: "paris, france",
		Type:          "city",
		Class:         "place",
	})
	b.Add("Paris, France", nil)
	b.Add("Lyon, France", &place.Location{
		Address:     "Lyon, France",
		CountryName: "France",
	})
	b.Add("Atlantis", &place.Location{Address: "Atlantis"})
	return b
}

func TestWritePlaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.csv")
	require.NoError(t, WritePlaces(path, testBook(), true))

	rows := readAll(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{
		"address", "alt_addr", "canonical_addr", "used", "type", "class", "icon",
		"latitude", "longitude", "found_country", "country_code", "country_name",
	}, rows[0])

	// sorted by address: Atlantis, Lyon, Paris
	assert.Equal(t, "Atlantis", rows[1][0])
	assert.Equal(t, "Lyon, France", rows[2][0])
	assert.Equal(t, "Paris, France", rows[3][0])
	assert.Equal(t, "paris, france", rows[3][2])
	assert.Equal(t, "2", rows[3][3])
	assert.Equal(t, "48.85", rows[3][7])
	assert.Equal(t, "true", rows[3][9])
}

func TestWritePlacesWithoutCanonical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.csv")
	require.NoError(t, WritePlaces(path, testBook(), false))

	rows := readAll(t, path)
	assert.NotContains(t, rows[0], "canonical_addr")
	assert.Len(t, rows[0], 11)
}

func TestWriteCountries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.csv")
	require.NoError(t, WriteCountries(path, testBook()))

	rows := readAll(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"country_name", "count"}, rows[0])
	assert.Equal(t, []string{"France", "3"}, rows[1])
	assert.Equal(t, []string{"Unknown", "1"}, rows[2])
}

func TestWriteAltPlaces(t *testing.T) {
	b := place.NewBook()
	b.Add("London, England", &place.Location{
		Address: "London, England",
		AltAddr: "London, United Kingdom",
	})
	b.Add("York, England", &place.Location{Address: "York, England"})

	path := filepath.Join(t.TempDir(), "alt_places.csv")
	require.NoError(t, WriteAltPlaces(path, b))

	rows := readAll(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"alt_addr", "address"}, rows[0])
	assert.Equal(t, []string{"London, United Kingdom", "London, England"}, rows[1])
}
