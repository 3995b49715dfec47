// Package summary writes the tabular batch reports: the per-place summary,
// the countries tally and the alt-place mapping.
package summary

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/gedtools/gedplace/internal/place"
)

// placeColumns is the fixed column set of the places summary, in order.
var placeColumns = []string{
	place.ColAddress,
	place.ColAltAddr,
	place.ColCanonicalAddr,
	place.ColUsed,
	place.ColType,
	place.ColClass,
	place.ColIcon,
	place.ColLatitude,
	place.ColLongitude,
	place.ColFoundCountry,
	place.ColCountryCode,
	place.ColCountryName,
}

// WritePlaces writes one row per book entry, sorted by address. When
// includeCanonical is false the canonical_addr column is omitted.
func WritePlaces(path string, book *place.Book, includeCanonical bool) error {
	cols := placeColumns
	if !includeCanonical {
		cols = make([]string, 0, len(placeColumns)-1)
		for _, c := range placeColumns {
			if c != place.ColCanonicalAddr {
				cols = append(cols, c)
			}
		}
	}

	keys := book.Keys()
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		row := book.Lookup(key).Row()
		rec := make([]string, len(cols))
		for i, col := range cols {
			rec[i] = row[col]
		}
		rows = append(rows, rec)
	}
	return writeCSV(path, cols, rows)
}

// WriteCountries tallies book entries per country name and writes
// country_name,count rows sorted by descending count, then name. Entries
// with no country tally under "Unknown".
func WriteCountries(path string, book *place.Book) error {
	tally := make(map[string]int)
	for _, loc := range book.Addresses() {
		name := loc.CountryName
		if name == "" {
			name = "Unknown"
		}
		tally[name] += loc.Used
	}

	names := make([]string, 0, len(tally))
	for name := range tally {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tally[names[i]] != tally[names[j]] {
			return tally[names[i]] > tally[names[j]]
		}
		return names[i] < names[j]
	})

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(tally[name])})
	}
	return writeCSV(path, []string{place.ColCountryName, "count"}, rows)
}

// WriteAltPlaces writes the alternate-address mapping: one row per
// (alt_addr, address) pair, sorted by alternate.
func WriteAltPlaces(path string, book *place.Book) error {
	alts := book.AltAddresses()
	sort.Strings(alts)

	var rows [][]string
	for _, alt := range alts {
		for _, addr := range book.AddressesForAlt(alt) {
			rows = append(rows, []string{alt, addr})
		}
	}
	return writeCSV(path, []string{place.ColAltAddr, place.ColAddress}, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "summary: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "summary: write header")
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "summary: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "summary: flush")
	}
	return nil
}
