package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGrid builds a 10x10 grid with 30 m cells, top-left corner at (0, 300),
// filled with the given value.
func testGrid(fill uint8) *Grid {
	cells := make([]uint8, 100)
	for i := range cells {
		cells[i] = fill
	}
	return &Grid{
		W: 10, H: 10,
		Cells:   cells,
		OriginX: 0, OriginY: 300,
		CellW: 30, CellH: 30,
		EPSG: 3857,
	}
}

func TestGridBounds(t *testing.T) {
	g := testGrid(1)
	b := g.Bounds()
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 300, MaxY: 300}, b)
}

func TestCropInsideExtent(t *testing.T) {
	g := testGrid(7)
	box := BBox{MinX: 60, MinY: 60, MaxX: 150, MaxY: 150}

	out, err := g.Crop(box)
	require.NoError(t, err)

	assert.True(t, out.Bounds().Covers(box), "crop must cover the requested box")
	assert.Equal(t, g.EPSG, out.EPSG)
	assert.Equal(t, g.CellW, out.CellW)
	assert.Equal(t, g.CellH, out.CellH)
	assert.Equal(t, 3, out.W)
	assert.Equal(t, 3, out.H)
	for _, v := range out.Cells {
		assert.Equal(t, uint8(7), v)
	}
}

func TestCropMisalignedBoxSnapsOutward(t *testing.T) {
	g := testGrid(2)
	box := BBox{MinX: 45, MinY: 45, MaxX: 155, MaxY: 155}

	out, err := g.Crop(box)
	require.NoError(t, err)

	assert.True(t, out.Bounds().Covers(box))
	// 45..155 spans cells 1..6 in both axes.
	assert.Equal(t, 5, out.W)
	assert.Equal(t, 5, out.H)
}

func TestCropBeyondExtentFillsNoData(t *testing.T) {
	g := testGrid(4)
	// Extends 60 m past the left and top edges.
	box := BBox{MinX: -60, MinY: 180, MaxX: 90, MaxY: 360}

	out, err := g.Crop(box)
	require.NoError(t, err)
	assert.True(t, out.Bounds().Covers(box))

	// Top-left corner of the crop is entirely outside the source.
	assert.Equal(t, NoData, out.At(0, 0))
	// Cells that overlap the source keep their values.
	assert.Equal(t, uint8(4), out.At(out.W-1, out.H-1))
}

func TestCropEmptyBox(t *testing.T) {
	g := testGrid(1)
	_, err := g.Crop(BBox{MinX: 10, MinY: 10, MaxX: 10, MaxY: 20})
	require.Error(t, err)
}

func TestCropPaddedBufferExtent(t *testing.T) {
	g := testGrid(3)
	// A 90 m box padded by 1.35 grows to 121.5 m.
	box := BBox{MinX: 105, MinY: 105, MaxX: 195, MaxY: 195}.Pad(1.35)

	assert.InDelta(t, 121.5, box.Width(), 1e-9)
	assert.InDelta(t, 150, (box.MinX+box.MaxX)/2, 1e-9)

	out, err := g.Crop(box)
	require.NoError(t, err)
	assert.True(t, out.Bounds().Covers(box))
}

func TestReclassifySubstitutes(t *testing.T) {
	g := testGrid(0)
	// Mix of categories, including both substitution sources.
	for i := range g.Cells {
		g.Cells[i] = uint8(i%9) + 1
	}
	subs := map[uint8]uint8{1: 10, 6: 10}

	out := g.Reclassify(subs)

	assert.Equal(t, g.W, out.W)
	assert.Equal(t, g.H, out.H)
	assert.Equal(t, g.EPSG, out.EPSG)
	for i, v := range g.Cells {
		switch v {
		case 1, 6:
			assert.Equal(t, uint8(10), out.Cells[i])
		default:
			assert.Equal(t, v, out.Cells[i], "cell %d must be unchanged", i)
		}
	}
}

func TestReclassifyIdempotent(t *testing.T) {
	g := testGrid(0)
	for i := range g.Cells {
		g.Cells[i] = uint8(i%9) + 1
	}
	subs := map[uint8]uint8{1: 10, 6: 10}

	once := g.Reclassify(subs)
	twice := once.Reclassify(subs)

	assert.Equal(t, once.Cells, twice.Cells, "second application must be a no-op")
}

func TestReclassifyLeavesSourceUntouched(t *testing.T) {
	g := testGrid(1)
	_ = g.Reclassify(map[uint8]uint8{1: 10})
	for _, v := range g.Cells {
		assert.Equal(t, uint8(1), v)
	}
}

func TestHistogramAndCategories(t *testing.T) {
	g := testGrid(0)
	g.Cells[0] = 8
	g.Cells[1] = 8
	g.Cells[2] = 3

	hist := g.Histogram()
	assert.Equal(t, 2, hist[8])
	assert.Equal(t, 1, hist[3])
	assert.Equal(t, 97, hist[NoData])

	assert.Equal(t, []uint8{3, 8}, g.Categories())
}

func TestBBoxPad(t *testing.T) {
	b := BBox{MinX: -100, MinY: -50, MaxX: 100, MaxY: 50}
	p := b.Pad(1.35)

	assert.InDelta(t, 270, p.Width(), 1e-9)
	assert.InDelta(t, 135, p.Height(), 1e-9)
	// Center preserved.
	assert.InDelta(t, 0, (p.MinX+p.MaxX)/2, 1e-9)
	assert.InDelta(t, 0, (p.MinY+p.MaxY)/2, 1e-9)
	assert.True(t, p.Covers(b))
}
