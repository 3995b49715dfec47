// Package geocache is the persistent cache of resolved places: entries keyed
// by lower-cased address, loaded in full at batch start and flushed in full
// at the end. Two backends share the in-memory index: a CSV file and a
// SQLite database.
package geocache

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gedtools/gedplace/internal/place"
)

// Store is the persistent cache contract. Load reads the backing store (and
// the alt-place override file), Save flushes every entry back atomically;
// everything in between is in-memory only.
type Store interface {
	Load() error
	// Lookup returns the effective address for a place (its alternate when
	// one is recorded, else the place itself) and the cache entry, or
	// (place, nil) on a miss. Keys are matched case-insensitively.
	Lookup(placeStr string) (string, *place.Location)
	// Put inserts or overwrites the entry for placeStr. The caller chooses
	// the key; fuzzy matching never happens here.
	Put(placeStr string, loc *place.Location)
	Has(placeStr string) bool
	Len() int
	// Entries exposes the live index keyed by lower-cased address. Callers
	// must not mutate it.
	Entries() map[string]*place.Location
	Save() error
	Close() error
}

// Option configures a backend.
type Option func(*options)

type options struct {
	altPath  string
	skipLoad bool
	log      *zap.Logger
}

// WithAltFile sets the alt-place override file merged in at load time.
func WithAltFile(path string) Option {
	return func(o *options) { o.altPath = path }
}

// WithSkipLoad starts the cache empty regardless of the backing store
// ("always re-resolve" mode). The alt-place file is still merged, since
// alternates affect display and canonicalization, not resolution.
func WithSkipLoad(skip bool) Option {
	return func(o *options) { o.skipLoad = skip }
}

// WithLogger overrides the backend's logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

func buildOptions(component string, opts []Option) options {
	o := options{log: zap.L().With(zap.String("component", component))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// memory is the in-memory index shared by the backends.
type memory struct {
	entries map[string]*place.Location
	log     *zap.Logger
}

func newMemory(log *zap.Logger) memory {
	return memory{entries: make(map[string]*place.Location), log: log}
}

func (m *memory) Lookup(placeStr string) (string, *place.Location) {
	entry, ok := m.entries[strings.ToLower(placeStr)]
	if !ok {
		return placeStr, nil
	}
	if alt := entry.AltAddr; alt != "" && !strings.EqualFold(alt, "none") {
		return alt, entry
	}
	return placeStr, entry
}

func (m *memory) Put(placeStr string, loc *place.Location) {
	if loc == nil {
		return
	}
	if loc.Address == "" {
		loc.Address = placeStr
	}
	m.entries[strings.ToLower(placeStr)] = loc
}

func (m *memory) Has(placeStr string) bool {
	_, ok := m.entries[strings.ToLower(placeStr)]
	return ok
}

func (m *memory) Len() int {
	return len(m.entries)
}

func (m *memory) Entries() map[string]*place.Location {
	return m.entries
}

// mergeAltFile reads the alt-place override CSV and merges it by address
// key: it supplies AltAddr values (and stub entries for unknown addresses)
// without ever overwriting cached coordinates. A missing file is fine.
func (m *memory) mergeAltFile(path string) error {
	if path == "" {
		return nil
	}
	rows, err := readCSVRows(path)
	if err != nil {
		if os.IsNotExist(eris.Cause(err)) {
			m.log.Debug("no alt-place file", zap.String("path", path))
			return nil
		}
		return err
	}
	merged := 0
	for _, row := range rows {
		alt := place.FromRow(row)
		if alt.Address == "" || alt.AltAddr == "" {
			continue
		}
		key := strings.ToLower(alt.Address)
		if existing, ok := m.entries[key]; ok {
			existing.AltAddr = alt.AltAddr
		} else {
			m.entries[key] = alt
		}
		merged++
	}
	m.log.Info("merged alt-place overrides",
		zap.String("path", path), zap.Int("entries", merged))
	return nil
}

// readCSVRows reads a header-row CSV into one map per record.
func readCSVRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geocache: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "geocache: read header of %s", path)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "geocache: read row of %s", path)
		}
		row := make(map[string]string, len(header))
		for i, val := range rec {
			if i < len(header) {
				row[header[i]] = val
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// baseColumns come first in the serialized cache, in this order; columns
// beyond these are appended sorted.
var baseColumns = []string{
	place.ColAddress,
	place.ColAltAddr,
	place.ColCanonicalAddr,
	place.ColLatitude,
	place.ColLongitude,
	place.ColCountryCode,
	place.ColCountryName,
	place.ColContinent,
	place.ColFoundCountry,
	place.ColUsed,
}

// columnUnion returns the union of all field names across rows: the base
// columns that occur, in their fixed order, then any extras sorted.
func columnUnion(rows []map[string]string) []string {
	present := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			present[col] = true
		}
	}
	cols := make([]string, 0, len(present))
	for _, col := range baseColumns {
		if present[col] {
			cols = append(cols, col)
			delete(present, col)
		}
	}
	extras := make([]string, 0, len(present))
	for col := range present {
		extras = append(extras, col)
	}
	sort.Strings(extras)
	return append(cols, extras...)
}
