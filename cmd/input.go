package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gedtools/gedplace/internal/gedcom"
	"github.com/gedtools/gedplace/internal/geocache"
	"github.com/gedtools/gedplace/internal/place"
)

// openStore builds the configured cache backend. The caller owns Load,
// Save and Close.
func openStore(cachePath, altPath string) (geocache.Store, error) {
	switch cfg.Cache.Driver {
	case "sqlite":
		return geocache.NewSQLite(cachePath, geocache.WithAltFile(altPath))
	case "csv":
		return geocache.NewCSV(cachePath, geocache.WithAltFile(altPath)), nil
	default:
		return nil, eris.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

// loadBook reads the input file into an address book. GEDCOM files are
// scanned for PLAC records; anything else is treated as one place string
// per line.
func loadBook(path string, threshold int) (*place.Book, error) {
	book := place.NewBook(place.WithThreshold(threshold))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ged", ".gedcom":
		places, err := gedcom.ExtractPlacesFile(path)
		if err != nil {
			return nil, err
		}
		for _, p := range places {
			book.Add(p.Name, &place.Location{Address: p.Name, LatLon: p.LatLon})
			for i := 1; i < p.Count; i++ {
				book.Add(p.Name, nil)
			}
		}
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "open %s", path)
		}
		defer f.Close() //nolint:errcheck
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			book.Add(line, &place.Location{Address: line})
		}
		if err := scanner.Err(); err != nil {
			return nil, eris.Wrapf(err, "read %s", path)
		}
	}
	return book, nil
}

// stem is the input file name without directory or extension, used to name
// the per-file outputs next to the input.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// altFileFor is the conventional per-file alternate-address file,
// <stem>_alt.csv next to the input.
func altFileFor(input string) string {
	return filepath.Join(filepath.Dir(input), stem(input)+"_alt.csv")
}
