// Package render composes categorical rasters, buffer rings, and site
// markers into static map figures.
package render

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/landcover-cli/internal/legend"
	"github.com/sells-group/landcover-cli/internal/raster"
)

// Options controls panel layout.
type Options struct {
	CellPx    int     // canvas pixels per raster cell
	Title     string  // panel title, empty for none
	Legend    bool    // draw the category legend
	Frame     bool    // draw a frame around the map area
	ScaleBar  bool    // draw a scale bar, bottom left
	Compass   bool    // draw a north arrow, top right
	ScaleBarM float64 // scale bar length in map units, 0 picks a round number
}

// Panel is one composed map figure: a raster layer with its palette plus
// vector overlays, all in a shared reference system.
type Panel struct {
	grid    *raster.Grid
	palette legend.Palette
	rings   []*geom.Polygon
	marker  *geom.Point
	opts    Options
}

// Compose validates that all layers share the raster's reference system
// and returns a renderable panel.
func Compose(grid *raster.Grid, palette legend.Palette, rings []*geom.Polygon, marker *geom.Point, opts Options) (*Panel, error) {
	if grid == nil {
		return nil, eris.New("render: nil raster layer")
	}
	if len(palette) == 0 {
		return nil, eris.New("render: empty palette")
	}
	if marker != nil && marker.SRID() != grid.EPSG {
		return nil, eris.Errorf("render: marker EPSG %d does not match raster EPSG %d", marker.SRID(), grid.EPSG)
	}
	for i, ring := range rings {
		if ring.SRID() != grid.EPSG {
			return nil, eris.Errorf("render: ring %d EPSG %d does not match raster EPSG %d", i, ring.SRID(), grid.EPSG)
		}
	}
	return &Panel{grid: grid, palette: palette, rings: rings, marker: marker, opts: opts}, nil
}

// LegendEntries returns the palette entries shown in the panel legend:
// categories present in the raster, in palette order. Hidden entries keep
// their swatch but carry a blank label.
func (p *Panel) LegendEntries() []legend.Entry {
	present := make(map[uint8]bool)
	for _, code := range p.grid.Categories() {
		present[code] = true
	}
	var out []legend.Entry
	for _, e := range p.palette {
		if present[e.Code] {
			out = append(out, e)
		}
	}
	return out
}

// VisibleLegendCount counts legend entries with a non-blank label.
func (p *Panel) VisibleLegendCount() int {
	n := 0
	for _, e := range p.LegendEntries() {
		if !e.Hidden {
			n++
		}
	}
	return n
}
