// Package buffer generates circular buffer polygons around a point.
package buffer

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// DefaultSegments is the number of vertices used to approximate a circle.
// Matches the common GIS default of 16 quadrant segments.
const DefaultSegments = 64

// Ring returns a polygon approximating a circle of the given radius
// centered on the point, in the point's reference system.
func Ring(center *geom.Point, radius float64, segments int) (*geom.Polygon, error) {
	if radius < 0 {
		return nil, eris.Errorf("buffer: negative radius %g", radius)
	}
	if segments < 3 {
		segments = DefaultSegments
	}

	cx, cy := center.X(), center.Y()
	flat := make([]float64, 0, (segments+1)*2)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		flat = append(flat, cx+radius*math.Cos(theta), cy+radius*math.Sin(theta))
	}
	// Close the ring.
	flat = append(flat, flat[0], flat[1])

	poly := geom.NewPolygon(geom.XY).SetSRID(center.SRID())
	if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
		return nil, eris.Wrap(err, "buffer: build ring")
	}
	return poly, nil
}

// Rings generates one buffer per radius around a shared center. The buffers
// are independent; no nesting order is enforced between them.
func Rings(center *geom.Point, radii []float64, segments int) ([]*geom.Polygon, error) {
	rings := make([]*geom.Polygon, 0, len(radii))
	for _, r := range radii {
		ring, err := Ring(center, r, segments)
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
	}
	return rings, nil
}
