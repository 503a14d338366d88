// Package export writes buffer polygons to GIS interchange formats.
package export

import (
	"encoding/json"
	"os"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Feature is one named buffer polygon with its radius.
type Feature struct {
	Name    string
	RadiusM float64
	Poly    *geom.Polygon
}

// WriteShapefile writes features to a polygon shapefile with NAME and
// RADIUS_M attributes.
func WriteShapefile(path string, feats []Feature) error {
	if len(feats) == 0 {
		return eris.New("export: no features")
	}

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close() //nolint:errcheck

	fields := []shp.Field{
		shp.StringField("NAME", 32),
		shp.FloatField("RADIUS_M", 12, 2),
	}
	w.SetFields(fields)

	for i, f := range feats {
		if f.Poly == nil || f.Poly.NumLinearRings() == 0 {
			return eris.Errorf("export: feature %d has no ring", i)
		}
		w.Write((*shp.Polygon)(shp.NewPolyLine(ringPoints(f.Poly))))
		if err := w.WriteAttribute(i, 0, f.Name); err != nil {
			return eris.Wrapf(err, "export: write NAME for feature %d", i)
		}
		if err := w.WriteAttribute(i, 1, f.RadiusM); err != nil {
			return eris.Wrapf(err, "export: write RADIUS_M for feature %d", i)
		}
	}
	return nil
}

// ringPoints converts polygon rings to go-shp point parts.
func ringPoints(poly *geom.Polygon) [][]shp.Point {
	parts := make([][]shp.Point, 0, poly.NumLinearRings())
	for i := 0; i < poly.NumLinearRings(); i++ {
		flat := poly.LinearRing(i).FlatCoords()
		pts := make([]shp.Point, 0, len(flat)/2)
		for j := 0; j+1 < len(flat); j += 2 {
			pts = append(pts, shp.Point{X: flat[j], Y: flat[j+1]})
		}
		parts = append(parts, pts)
	}
	return parts
}

// WriteGeoJSON writes features to a GeoJSON FeatureCollection.
func WriteGeoJSON(path string, feats []Feature) error {
	if len(feats) == 0 {
		return eris.New("export: no features")
	}

	fc := &geojson.FeatureCollection{}
	for _, f := range feats {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: f.Poly,
			Properties: map[string]interface{}{
				"name":     f.Name,
				"radius_m": f.RadiusM,
			},
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "export: marshal feature collection")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}
