package geocache

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gedtools/gedplace/internal/place"
)

// CSVStore persists the cache as a single header-row CSV file.
type CSVStore struct {
	memory
	path     string
	altPath  string
	skipLoad bool
}

// NewCSV returns a CSV-backed store for the given path. Nothing is read
// until Load.
func NewCSV(path string, opts ...Option) *CSVStore {
	o := buildOptions("geocache", opts)
	return &CSVStore{
		memory:   newMemory(o.log.With(zap.String("cache", path))),
		path:     path,
		altPath:  o.altPath,
		skipLoad: o.skipLoad,
	}
}

// Load reads the cache file and merges the alt-place overrides. A missing
// or corrupt cache file is logged and treated as an empty cache; usage
// counters always restart at 0.
func (s *CSVStore) Load() error {
	if s.skipLoad {
		s.log.Info("cache load skipped, re-resolving everything")
		return s.mergeAltFile(s.altPath)
	}
	if s.path != "" {
		rows, err := readCSVRows(s.path)
		if err != nil {
			if os.IsNotExist(eris.Cause(err)) {
				s.log.Info("no cache file yet, starting empty")
			} else {
				s.log.Warn("unreadable cache file, starting empty", zap.Error(err))
			}
		}
		for _, row := range rows {
			entry := place.FromRow(row)
			if entry.Address == "" {
				continue
			}
			s.Put(entry.Address, entry)
		}
		s.log.Info("loaded cache", zap.Int("entries", s.Len()))
	}
	return s.mergeAltFile(s.altPath)
}

// Save serializes every entry with the union of all field names seen across
// entries and replaces the cache file atomically. An unset path or an empty
// cache is a logged no-op.
func (s *CSVStore) Save() error {
	if s.path == "" {
		s.log.Info("no cache path configured, skipping save")
		return nil
	}
	if s.Len() == 0 {
		s.log.Info("cache empty, skipping save")
		return nil
	}

	keys := make([]string, 0, s.Len())
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]map[string]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, s.entries[k].Row())
	}
	cols := columnUnion(rows)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".geocache-*.tmp")
	if err != nil {
		return eris.Wrap(err, "geocache: create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	w := csv.NewWriter(tmp)
	if err := w.Write(cols); err != nil {
		tmp.Close()
		return eris.Wrap(err, "geocache: write header")
	}
	rec := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return eris.Wrap(err, "geocache: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return eris.Wrap(err, "geocache: flush")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "geocache: close temp file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return eris.Wrapf(err, "geocache: replace %s", s.path)
	}
	s.log.Info("saved cache", zap.Int("entries", len(rows)))
	return nil
}

// Close is a no-op for the CSV backend.
func (s *CSVStore) Close() error { return nil }
