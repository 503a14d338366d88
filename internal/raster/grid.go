// Package raster loads, crops, and reclassifies single-band categorical
// rasters georeferenced by a world file.
package raster

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// NoData marks cells outside the source raster extent.
const NoData uint8 = 0

// Grid is a single-band categorical raster. Cells are stored row-major
// from the top-left; OriginX/OriginY is the outer corner of the top-left
// cell. CellW and CellH are both positive; rows advance in -y.
type Grid struct {
	W, H    int
	Cells   []uint8
	OriginX float64
	OriginY float64
	CellW   float64
	CellH   float64
	EPSG    int
}

// At returns the cell value at the given column and row.
func (g *Grid) At(col, row int) uint8 {
	return g.Cells[row*g.W+col]
}

// Bounds returns the spatial extent of the grid.
func (g *Grid) Bounds() BBox {
	return BBox{
		MinX: g.OriginX,
		MinY: g.OriginY - float64(g.H)*g.CellH,
		MaxX: g.OriginX + float64(g.W)*g.CellW,
		MaxY: g.OriginY,
	}
}

// Crop returns the subset of the grid covering at least the given box.
// Cells outside the source extent are filled with NoData. Reference system
// and cell resolution are preserved.
func (g *Grid) Crop(box BBox) (*Grid, error) {
	if box.Width() <= 0 || box.Height() <= 0 {
		return nil, eris.Errorf("raster: empty crop box %+v", box)
	}

	col0 := int(math.Floor((box.MinX - g.OriginX) / g.CellW))
	col1 := int(math.Ceil((box.MaxX - g.OriginX) / g.CellW))
	row0 := int(math.Floor((g.OriginY - box.MaxY) / g.CellH))
	row1 := int(math.Ceil((g.OriginY - box.MinY) / g.CellH))

	w := col1 - col0
	h := row1 - row0
	out := &Grid{
		W:       w,
		H:       h,
		Cells:   make([]uint8, w*h),
		OriginX: g.OriginX + float64(col0)*g.CellW,
		OriginY: g.OriginY - float64(row0)*g.CellH,
		CellW:   g.CellW,
		CellH:   g.CellH,
		EPSG:    g.EPSG,
	}

	for r := 0; r < h; r++ {
		sr := row0 + r
		if sr < 0 || sr >= g.H {
			continue // NoData fill
		}
		for c := 0; c < w; c++ {
			sc := col0 + c
			if sc < 0 || sc >= g.W {
				continue
			}
			out.Cells[r*w+c] = g.Cells[sr*g.W+sc]
		}
	}
	return out, nil
}

// Reclassify returns a grid with every cell matching an old value replaced
// by the corresponding new value; all other cells are unchanged. Grid shape
// and reference system are preserved.
func (g *Grid) Reclassify(subs map[uint8]uint8) *Grid {
	out := &Grid{
		W:       g.W,
		H:       g.H,
		Cells:   make([]uint8, len(g.Cells)),
		OriginX: g.OriginX,
		OriginY: g.OriginY,
		CellW:   g.CellW,
		CellH:   g.CellH,
		EPSG:    g.EPSG,
	}
	for i, v := range g.Cells {
		if next, ok := subs[v]; ok {
			out.Cells[i] = next
		} else {
			out.Cells[i] = v
		}
	}
	return out
}

// Histogram counts cells per category code, NoData included.
func (g *Grid) Histogram() map[uint8]int {
	hist := make(map[uint8]int)
	for _, v := range g.Cells {
		hist[v]++
	}
	return hist
}

// Categories returns the sorted category codes present in the grid,
// excluding NoData.
func (g *Grid) Categories() []uint8 {
	hist := g.Histogram()
	codes := make([]uint8, 0, len(hist))
	for code := range hist {
		if code == NoData {
			continue
		}
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
