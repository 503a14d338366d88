// Package crs constructs coordinate-reference-system tagged points and
// transforms them between the supported EPSG codes.
package crs

import (
	"github.com/ctessum/geom/proj"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// Supported EPSG codes.
const (
	EPSG4326 = 4326 // geographic longitude/latitude, WGS84
	EPSG3857 = 3857 // spherical web mercator, meters
)

// proj4 spatial reference definitions keyed by EPSG code.
var proj4 = map[int]string{
	EPSG4326: "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs",
	EPSG3857: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
}

// NewPoint builds a point tagged with the given EPSG code. For EPSG:4326
// x is longitude and y is latitude.
func NewPoint(x, y float64, epsg int) (*geom.Point, error) {
	if _, ok := proj4[epsg]; !ok {
		return nil, eris.Errorf("crs: unsupported EPSG code %d", epsg)
	}
	return geom.NewPointFlat(geom.XY, []float64{x, y}).SetSRID(epsg), nil
}

// Reproject transforms a point into the target reference system. The
// returned point's SRID always equals the requested target.
func Reproject(pt *geom.Point, targetEPSG int) (*geom.Point, error) {
	if pt.SRID() == targetEPSG {
		return geom.NewPointFlat(geom.XY, []float64{pt.X(), pt.Y()}).SetSRID(targetEPSG), nil
	}

	tr, err := Transformer(pt.SRID(), targetEPSG)
	if err != nil {
		return nil, err
	}
	x, y, err := tr(pt.X(), pt.Y())
	if err != nil {
		return nil, eris.Wrapf(err, "crs: transform %d -> %d", pt.SRID(), targetEPSG)
	}
	return geom.NewPointFlat(geom.XY, []float64{x, y}).SetSRID(targetEPSG), nil
}

// Transformer returns a coordinate transform between two EPSG codes.
func Transformer(fromEPSG, toEPSG int) (proj.Transformer, error) {
	fromDef, ok := proj4[fromEPSG]
	if !ok {
		return nil, eris.Errorf("crs: unsupported EPSG code %d", fromEPSG)
	}
	toDef, ok := proj4[toEPSG]
	if !ok {
		return nil, eris.Errorf("crs: unsupported EPSG code %d", toEPSG)
	}

	fromSR, err := proj.Parse(fromDef)
	if err != nil {
		return nil, eris.Wrapf(err, "crs: parse EPSG:%d", fromEPSG)
	}
	toSR, err := proj.Parse(toDef)
	if err != nil {
		return nil, eris.Wrapf(err, "crs: parse EPSG:%d", toEPSG)
	}

	tr, err := fromSR.NewTransform(toSR)
	if err != nil {
		return nil, eris.Wrapf(err, "crs: build transform %d -> %d", fromEPSG, toEPSG)
	}
	return tr, nil
}
