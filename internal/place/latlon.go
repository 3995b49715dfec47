// Package place holds the core data model for resolved places: coordinate
// pairs, location records, and the fuzzy address book.
package place

import (
	"fmt"
	"strconv"
	"strings"
)

// LatLon is an optional latitude/longitude pair. A nil field means the
// coordinate is unknown; the pair is usable only when both are set.
type LatLon struct {
	Lat *float64
	Lon *float64
}

// ParseLat parses a latitude from a signed decimal string or an 'N'/'S'
// prefixed magnitude ('S' negates). Returns nil for anything unparsable.
func ParseLat(s string) *float64 {
	return parseCoord(s, 'N', 'S')
}

// ParseLon parses a longitude from a signed decimal string or an 'E'/'W'
// prefixed magnitude ('W' negates). Returns nil for anything unparsable.
func ParseLon(s string) *float64 {
	return parseCoord(s, 'E', 'W')
}

func parseCoord(s string, pos, neg byte) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	dir := s[0]
	if dir >= 'a' && dir <= 'z' {
		dir -= 'a' - 'A'
	}
	if dir == pos || dir == neg {
		mag, err := strconv.ParseFloat(strings.TrimSpace(s[1:]), 64)
		if err != nil {
			return nil
		}
		if dir == neg {
			mag = -mag
		}
		return &mag
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &val
}

// NewLatLon builds a pair from already-parsed values.
func NewLatLon(lat, lon float64) LatLon {
	return LatLon{Lat: &lat, Lon: &lon}
}

// ParseLatLon builds a pair from two coordinate strings, hemisphere prefixes
// allowed. Either side may come back nil.
func ParseLatLon(lat, lon string) LatLon {
	return LatLon{Lat: ParseLat(lat), Lon: ParseLon(lon)}
}

// LatLonFromString parses a "lat,lon" string such as "N51.5,E0.1" or
// "51.5,0.1". Anything that is not exactly two comma-separated parts yields
// the invalid pair.
func LatLonFromString(s string) LatLon {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return LatLon{}
	}
	return ParseLatLon(parts[0], parts[1])
}

// IsValid reports whether both coordinates are known. An invalid pair means
// "unknown location" everywhere downstream.
func (ll LatLon) IsValid() bool {
	return ll.Lat != nil && ll.Lon != nil
}

func (ll LatLon) String() string {
	lat, lon := "", ""
	if ll.Lat != nil {
		lat = strconv.FormatFloat(*ll.Lat, 'f', -1, 64)
	}
	if ll.Lon != nil {
		lon = strconv.FormatFloat(*ll.Lon, 'f', -1, 64)
	}
	return fmt.Sprintf("[%s,%s]", lat, lon)
}
