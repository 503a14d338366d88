// Package site reads study-site coordinates from delimited text.
package site

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// Site is one study location. Coordinates are in the source reference
// system (EPSG:4326 by default: longitude/latitude degrees).
type Site struct {
	Name      string  `csv:"name"`
	Longitude float64 `csv:"longitude"`
	Latitude  float64 `csv:"latitude"`
}

// Load reads site rows from CSV. The first row must be a header with at
// least longitude and latitude columns. Malformed rows abort the read.
func Load(r io.Reader) ([]Site, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, eris.Wrap(err, "site: read header")
	}

	var sites []Site
	for {
		var s Site
		if err := dec.Decode(&s); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(err, "site: decode row")
		}
		sites = append(sites, s)
	}
	if len(sites) == 0 {
		return nil, eris.New("site: no rows")
	}
	return sites, nil
}

// LoadFile reads site rows from a CSV file.
func LoadFile(path string) ([]Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "site: open %s", path)
	}
	defer f.Close() //nolint:errcheck
	return Load(f)
}
