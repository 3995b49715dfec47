// Package gedcom extracts place strings from GEDCOM files. This is
// deliberately a line scanner, not a record-graph parser: all the resolver
// needs are the PLAC values and any coordinates a MAP sub-record supplies.
package gedcom

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gedtools/gedplace/internal/place"
)

// Place is one distinct PLAC value with how often it occurred and any
// coordinates found in a MAP sub-record.
type Place struct {
	Name   string
	Count  int
	LatLon place.LatLon
}

// ExtractPlaces scans GEDCOM lines for PLAC values, in first-seen order.
// LATI/LONG sub-records attach to the PLAC they follow; later coordinates
// for the same place never overwrite earlier ones.
func ExtractPlaces(r io.Reader) ([]Place, error) {
	var (
		order   []string
		byName  = make(map[string]*Place)
		current *Place
		lat     string
		lon     string
	)
	flush := func() {
		if current != nil && lat != "" && lon != "" && !current.LatLon.IsValid() {
			current.LatLon = place.ParseLatLon(lat, lon)
		}
		lat, lon = "", ""
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// level tag [value]
		fields := strings.SplitN(line, " ", 3)
		if len(fields) < 2 {
			continue
		}
		tag := strings.ToUpper(fields[1])
		value := ""
		if len(fields) == 3 {
			value = strings.TrimSpace(fields[2])
		}

		switch tag {
		case "PLAC":
			flush()
			if value == "" {
				current = nil
				continue
			}
			p, ok := byName[value]
			if !ok {
				p = &Place{Name: value}
				byName[value] = p
				order = append(order, value)
			}
			p.Count++
			current = p
		case "MAP":
			// coordinates follow
		case "LATI":
			lat = value
		case "LONG":
			lon = value
		default:
			// a new record or event ends the MAP scope
			flush()
			current = nil
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "gedcom: scan")
	}

	out := make([]Place, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

// ExtractPlacesFile opens path and extracts its places.
func ExtractPlacesFile(path string) ([]Place, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "gedcom: open %s", path)
	}
	defer f.Close() //nolint:errcheck
	return ExtractPlaces(f)
}
