package geocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/gedtools/gedplace/internal/place"
)

// SQLiteStore persists the cache in a SQLite database using
// modernc.org/sqlite. Besides the cache table it keeps a run log, one row
// per resolve invocation.
type SQLiteStore struct {
	memory
	db       *sql.DB
	altPath  string
	skipLoad bool
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS geo_cache (
	address        TEXT PRIMARY KEY,
	display_addr   TEXT NOT NULL,
	alt_addr       TEXT,
	canonical_addr TEXT,
	latitude       TEXT,
	longitude      TEXT,
	country_code   TEXT,
	country_name   TEXT,
	continent      TEXT,
	found_country  INTEGER NOT NULL DEFAULT 0,
	used           INTEGER NOT NULL DEFAULT 0,
	extra          TEXT,
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	input_file  TEXT NOT NULL,
	places      INTEGER NOT NULL,
	cached      INTEGER NOT NULL,
	resolved    INTEGER NOT NULL,
	unresolved  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_input_file ON runs(input_file);
`

// NewSQLite opens (and migrates) a SQLite-backed store at the given DSN.
func NewSQLite(dsn string, opts ...Option) (*SQLiteStore, error) {
	o := buildOptions("geocache", opts)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "geocache: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "geocache: exec %s", pragma)
		}
	}
	if _, err := db.Exec(sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "geocache: migrate")
	}

	return &SQLiteStore{
		memory:   newMemory(o.log.With(zap.String("cache", dsn))),
		db:       db,
		altPath:  o.altPath,
		skipLoad: o.skipLoad,
	}, nil
}

// Load reads every cache row into memory (usage reset to 0) and merges the
// alt-place overrides.
func (s *SQLiteStore) Load() error {
	if s.skipLoad {
		s.log.Info("cache load skipped, re-resolving everything")
		return s.mergeAltFile(s.altPath)
	}

	rows, err := s.db.Query(`
		SELECT display_addr, alt_addr, canonical_addr, latitude, longitude,
		       country_code, country_name, continent, found_country, extra
		FROM geo_cache`)
	if err != nil {
		return eris.Wrap(err, "geocache: query cache")
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var (
			entry        place.Location
			lat, lon     sql.NullString
			alt, canon   sql.NullString
			code, name   sql.NullString
			continent    sql.NullString
			foundCountry int
			extra        sql.NullString
		)
		if err := rows.Scan(&entry.Address, &alt, &canon, &lat, &lon,
			&code, &name, &continent, &foundCountry, &extra); err != nil {
			return eris.Wrap(err, "geocache: scan cache row")
		}
		entry.AltAddr = alt.String
		entry.CanonicalAddr = canon.String
		entry.LatLon = place.ParseLatLon(lat.String, lon.String)
		entry.CountryCode = code.String
		entry.CountryName = name.String
		entry.Continent = continent.String
		entry.FoundCountry = foundCountry != 0
		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &entry.Extra); err != nil {
				s.log.Warn("bad extra column, dropping",
					zap.String("address", entry.Address), zap.Error(err))
			}
		}
		s.hydrate(&entry)
		s.Put(entry.Address, &entry)
	}
	if err := rows.Err(); err != nil {
		return eris.Wrap(err, "geocache: iterate cache rows")
	}
	s.log.Info("loaded cache", zap.Int("entries", s.Len()))
	return s.mergeAltFile(s.altPath)
}

// hydrate pulls the modeled passthrough fields back out of Extra so both
// backends present identical records.
func (s *SQLiteStore) hydrate(entry *place.Location) {
	if entry.Extra == nil {
		return
	}
	take := func(key string) string {
		v := entry.Extra[key]
		delete(entry.Extra, key)
		return v
	}
	entry.Class = take(place.ColClass)
	entry.Type = take(place.ColType)
	entry.Icon = take(place.ColIcon)
	entry.PlaceID = take(place.ColPlaceID)
	entry.Boundary = take(place.ColBoundary)
	entry.Size = take(place.ColSize)
	entry.Importance = take(place.ColImportance)
	if len(entry.Extra) == 0 {
		entry.Extra = nil
	}
}

// Save upserts every entry in one transaction. An empty cache is a logged
// no-op.
func (s *SQLiteStore) Save() error {
	if s.Len() == 0 {
		s.log.Info("cache empty, skipping save")
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return eris.Wrap(err, "geocache: begin save")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.Prepare(`
		INSERT INTO geo_cache (address, display_addr, alt_addr, canonical_addr,
			latitude, longitude, country_code, country_name, continent,
			found_country, used, extra, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			display_addr = excluded.display_addr,
			alt_addr = excluded.alt_addr,
			canonical_addr = excluded.canonical_addr,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			country_code = excluded.country_code,
			country_name = excluded.country_name,
			continent = excluded.continent,
			found_country = excluded.found_country,
			used = excluded.used,
			extra = excluded.extra,
			updated_at = excluded.updated_at`)
	if err != nil {
		return eris.Wrap(err, "geocache: prepare upsert")
	}
	defer stmt.Close() //nolint:errcheck

	now := time.Now().UTC()
	for key, entry := range s.entries {
		row := entry.Row()
		extra := extraJSON(row)
		found := 0
		if entry.FoundCountry {
			found = 1
		}
		if _, err := stmt.Exec(key, entry.Address, entry.AltAddr,
			entry.CanonicalAddr, row[place.ColLatitude], row[place.ColLongitude],
			entry.CountryCode, entry.CountryName, entry.Continent,
			found, entry.Used, extra, now); err != nil {
			return eris.Wrapf(err, "geocache: upsert %s", key)
		}
	}
	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "geocache: commit save")
	}
	s.log.Info("saved cache", zap.Int("entries", s.Len()))
	return nil
}

// extraJSON packs every row column without a dedicated cache column into a
// JSON object, "" when there are none.
func extraJSON(row map[string]string) string {
	fixed := map[string]bool{
		place.ColAddress: true, place.ColAltAddr: true,
		place.ColCanonicalAddr: true, place.ColLatitude: true,
		place.ColLongitude: true, place.ColCountryCode: true,
		place.ColCountryName: true, place.ColContinent: true,
		place.ColFoundCountry: true, place.ColUsed: true,
	}
	extra := make(map[string]string)
	for col, val := range row {
		if !fixed[col] && val != "" {
			extra[col] = val
		}
	}
	if len(extra) == 0 {
		return ""
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return ""
	}
	return string(b)
}

// RunRecord is one row of the resolve run log.
type RunRecord struct {
	InputFile  string
	Places     int
	Cached     int
	Resolved   int
	Unresolved int
	Duration   time.Duration
}

// RecordRun inserts a run-log row and returns its id.
func (s *SQLiteStore) RecordRun(ctx context.Context, rec RunRecord) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, input_file, places, cached, resolved, unresolved, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.InputFile, rec.Places, rec.Cached, rec.Resolved, rec.Unresolved,
		rec.Duration.Milliseconds(), time.Now().UTC())
	if err != nil {
		return "", eris.Wrap(err, "geocache: insert run")
	}
	return id, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
