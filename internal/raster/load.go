package raster

import (
	"image"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/image/tiff"
)

// Load reads a single-band categorical TIFF and georeferences it from the
// given world file. The raster's reference system is declared by epsg; the
// file's grid, cell values, and resolution are preserved as-is.
func Load(tiffPath, worldPath string, epsg int) (*Grid, error) {
	f, err := os.Open(tiffPath)
	if err != nil {
		return nil, eris.Wrapf(err, "raster: open %s", tiffPath)
	}
	defer f.Close() //nolint:errcheck

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, eris.Wrapf(err, "raster: decode %s", tiffPath)
	}

	wf, err := readWorldFile(worldPath)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	cells := make([]uint8, w*h)

	switch im := img.(type) {
	case *image.Gray:
		for r := 0; r < h; r++ {
			copy(cells[r*w:(r+1)*w], im.Pix[r*im.Stride:r*im.Stride+w])
		}
	case *image.Paletted:
		for r := 0; r < h; r++ {
			copy(cells[r*w:(r+1)*w], im.Pix[r*im.Stride:r*im.Stride+w])
		}
	default:
		return nil, eris.Errorf("raster: %s is not a single-band 8-bit raster (%T)", tiffPath, img)
	}

	cellH := -wf.cellH
	return &Grid{
		W:     w,
		H:     h,
		Cells: cells,
		// World files reference the center of the upper-left cell.
		OriginX: wf.centerX - wf.cellW/2,
		OriginY: wf.centerY + cellH/2,
		CellW:   wf.cellW,
		CellH:   cellH,
		EPSG:    epsg,
	}, nil
}
