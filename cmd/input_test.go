package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedtools/gedplace/internal/config"
	"github.com/gedtools/gedplace/internal/geocache"
	"github.com/gedtools/gedplace/internal/place"
)

func TestLoadBookFromGedcom(t *testing.T) {
	doc := `0 @I1@ INDI
1 BIRT
2 PLAC Springfield, Illinois, USA
3 MAP
4 LATI N39.7817
4 LONG W89.6501
1 DEAT
2 PLAC Paris, France
0 @I2@ INDI
1 BIRT
2 PLAC Springfield, Illinois, USA
`
	path := filepath.Join(t.TempDir(), "family.ged")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	book, err := loadBook(path, place.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 2, book.Len())

	springfield := book.Lookup("Springfield, Illinois, USA")
	require.NotNil(t, springfield)
	assert.Equal(t, 2, springfield.Used)
	assert.True(t, springfield.LatLon.IsValid())

	paris := book.Lookup("Paris, France")
	require.NotNil(t, paris)
	assert.Equal(t, 1, paris.Used)
}

func TestLoadBookFromTextLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.txt")
	require.NoError(t, os.WriteFile(path, []byte("Paris, France\n\n# comment\nLondon, England\n"), 0o644))

	book, err := loadBook(path, place.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 2, book.Len())
	assert.NotNil(t, book.Lookup("Paris, France"))
	assert.NotNil(t, book.Lookup("London, England"))
}

func TestLoadBookMissingFile(t *testing.T) {
	_, err := loadBook(filepath.Join(t.TempDir(), "absent.txt"), place.DefaultThreshold)
	assert.Error(t, err)
}

func TestStemAndAltFile(t *testing.T) {
	assert.Equal(t, "family", stem("/data/family.ged"))
	assert.Equal(t, filepath.Join("/data", "family_alt.csv"), altFileFor("/data/family.ged"))
}

func TestOpenStoreDrivers(t *testing.T) {
	dir := t.TempDir()
	orig := cfg
	t.Cleanup(func() { cfg = orig })

	cfg = &config.Config{}
	cfg.Cache.Driver = "csv"
	s, err := openStore(filepath.Join(dir, "cache.csv"), "")
	require.NoError(t, err)
	_, ok := s.(*geocache.CSVStore)
	assert.True(t, ok)

	cfg.Cache.Driver = "sqlite"
	s, err = openStore(filepath.Join(dir, "cache.db"), "")
	require.NoError(t, err)
	_, ok = s.(*geocache.SQLiteStore)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	cfg.Cache.Driver = "postgres"
	_, err = openStore(filepath.Join(dir, "x"), "")
	assert.Error(t, err)
}
