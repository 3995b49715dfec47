package place

import (
	"strconv"
	"strings"
)

// Cache row column names. The persistent cache and the summaries share these;
// FromRow additionally understands the legacy aliases (place, alt_place, lat,
// long) found in caches written by older tooling.
const (
	ColAddress       = "address"
	ColAltAddr       = "alt_addr"
	ColCanonicalAddr = "canonical_addr"
	ColLatitude      = "latitude"
	ColLongitude     = "longitude"
	ColCountryCode   = "country_code"
	ColCountryName   = "country_name"
	ColContinent     = "continent"
	ColFoundCountry  = "found_country"
	ColUsed          = "used"
	ColClass         = "class"
	ColType          = "type"
	ColIcon          = "icon"
	ColPlaceID       = "place_id"
	ColBoundary      = "boundary"
	ColSize          = "size"
	ColImportance    = "importance"
)

// Location is everything known about one place string. The field list is
// closed: provider metadata the record does not model explicitly travels in
// Extra as opaque cache columns.
type Location struct {
	Used         int
	LatLon       LatLon
	CountryCode  string
	CountryName  string
	Continent    string
	FoundCountry bool
	Address      string
	AltAddr      string

	CanonicalAddr  string
	CanonicalParts map[string]string

	// Provider passthrough. Never interpreted, only cached and displayed.
	Class      string
	Type       string
	Icon       string
	PlaceID    string
	Boundary   string
	Size       string
	Importance string

	// Extra holds cache columns this record does not model.
	Extra map[string]string
}

// NewLocation returns an empty record carrying just the address.
func NewLocation(address string) *Location {
	return &Location{Address: address}
}

// Merge returns a new record preferring every non-empty field of l, falling
// back to other field-by-field. The coordinate pair moves wholesale: other's
// pair is taken only when l has no valid pair. Callers must pass the
// preferred record as the receiver — on conflicting non-empty fields l wins.
func (l *Location) Merge(other *Location) *Location {
	if l == nil && other == nil {
		return nil
	}
	if l == nil {
		cp := *other
		return &cp
	}
	out := *l
	if other == nil {
		return &out
	}

	if out.Used == 0 {
		out.Used = other.Used
	}
	if !out.LatLon.IsValid() && other.LatLon.IsValid() {
		out.LatLon = other.LatLon
	}
	out.CountryCode = firstNonEmpty(out.CountryCode, other.CountryCode)
	out.CountryName = firstNonEmpty(out.CountryName, other.CountryName)
	out.Continent = firstNonEmpty(out.Continent, other.Continent)
	if !out.FoundCountry {
		out.FoundCountry = other.FoundCountry
	}
	out.Address = firstNonEmpty(out.Address, other.Address)
	out.AltAddr = firstNonEmpty(out.AltAddr, other.AltAddr)
	out.CanonicalAddr = firstNonEmpty(out.CanonicalAddr, other.CanonicalAddr)
	if len(out.CanonicalParts) == 0 && len(other.CanonicalParts) > 0 {
		out.CanonicalParts = other.CanonicalParts
	}
	out.Class = firstNonEmpty(out.Class, other.Class)
	out.Type = firstNonEmpty(out.Type, other.Type)
	out.Icon = firstNonEmpty(out.Icon, other.Icon)
	out.PlaceID = firstNonEmpty(out.PlaceID, other.PlaceID)
	out.Boundary = firstNonEmpty(out.Boundary, other.Boundary)
	out.Size = firstNonEmpty(out.Size, other.Size)
	out.Importance = firstNonEmpty(out.Importance, other.Importance)
	if len(out.Extra) == 0 && len(other.Extra) > 0 {
		out.Extra = other.Extra
	}
	return &out
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// FromRow rebuilds a record from a flattened cache row. Usage always starts
// at 0 — it is a per-run statistic, not a persisted fact. A continent of
// "none" is treated as absent.
func FromRow(row map[string]string) *Location {
	l := &Location{}
	var latStr, lonStr string

	for key, val := range row {
		switch strings.ToLower(key) {
		case ColAddress, "place":
			l.Address = val
		case ColAltAddr, "alt_place":
			l.AltAddr = val
		case ColCanonicalAddr:
			l.CanonicalAddr = val
		case ColLatitude, "lat":
			latStr = val
		case ColLongitude, "long", "lon":
			lonStr = val
		case ColCountryCode:
			l.CountryCode = val
		case ColCountryName:
			l.CountryName = val
		case ColContinent:
			if !strings.EqualFold(strings.TrimSpace(val), "none") {
				l.Continent = val
			}
		case ColFoundCountry:
			l.FoundCountry = parseBool(val)
		case ColUsed:
			// reset below
		case ColClass:
			l.Class = val
		case ColType:
			l.Type = val
		case ColIcon:
			l.Icon = val
		case ColPlaceID:
			l.PlaceID = val
		case ColBoundary:
			l.Boundary = val
		case ColSize:
			l.Size = val
		case ColImportance:
			l.Importance = val
		default:
			if val != "" {
				if l.Extra == nil {
					l.Extra = make(map[string]string)
				}
				l.Extra[key] = val
			}
		}
	}

	if latStr != "" && lonStr != "" {
		l.LatLon = ParseLatLon(latStr, lonStr)
	}
	l.Used = 0
	return l
}

// Row flattens the record into cache columns. Absent optional fields become
// empty strings; Extra columns are carried through untouched.
func (l *Location) Row() map[string]string {
	row := map[string]string{
		ColAddress:      l.Address,
		ColAltAddr:      l.AltAddr,
		ColCountryCode:  l.CountryCode,
		ColCountryName:  l.CountryName,
		ColContinent:    l.Continent,
		ColFoundCountry: strconv.FormatBool(l.FoundCountry),
		ColUsed:         strconv.Itoa(l.Used),
	}
	if l.LatLon.Lat != nil {
		row[ColLatitude] = strconv.FormatFloat(*l.LatLon.Lat, 'f', -1, 64)
	} else {
		row[ColLatitude] = ""
	}
	if l.LatLon.Lon != nil {
		row[ColLongitude] = strconv.FormatFloat(*l.LatLon.Lon, 'f', -1, 64)
	} else {
		row[ColLongitude] = ""
	}
	setIfNonEmpty(row, ColCanonicalAddr, l.CanonicalAddr)
	setIfNonEmpty(row, ColClass, l.Class)
	setIfNonEmpty(row, ColType, l.Type)
	setIfNonEmpty(row, ColIcon, l.Icon)
	setIfNonEmpty(row, ColPlaceID, l.PlaceID)
	setIfNonEmpty(row, ColBoundary, l.Boundary)
	setIfNonEmpty(row, ColSize, l.Size)
	setIfNonEmpty(row, ColImportance, l.Importance)
	for k, v := range l.Extra {
		if _, taken := row[k]; !taken {
			row[k] = v
		}
	}
	return row
}

func setIfNonEmpty(row map[string]string, key, val string) {
	if val != "" {
		row[key] = val
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
