// Package legend maps categorical land-cover codes to display labels and
// colors.
package legend

import (
	"image/color"
)

// HiddenCode is the sentinel category produced by merging classes that
// should not be distinguished on the reclassified figure.
const HiddenCode uint8 = 10

// Entry maps one category code to its display label and color. Hidden
// entries keep their swatch but render with a blank label.
type Entry struct {
	Code   uint8
	Label  string
	Color  color.RGBA
	Hidden bool
}

// Palette is an ordered list of legend entries.
type Palette []Entry

// Default returns the nine-class land-cover palette.
func Default() Palette {
	return Palette{
		{Code: 1, Label: "water", Color: color.RGBA{R: 0x47, G: 0x6b, B: 0xa1, A: 0xff}},
		{Code: 2, Label: "barren", Color: color.RGBA{R: 0xb3, G: 0xaf, B: 0xa4, A: 0xff}},
		{Code: 3, Label: "developed", Color: color.RGBA{R: 0xab, G: 0x00, B: 0x00, A: 0xff}},
		{Code: 4, Label: "grassland", Color: color.RGBA{R: 0xdf, G: 0xdf, B: 0xc2, A: 0xff}},
		{Code: 5, Label: "wetland", Color: color.RGBA{R: 0x70, G: 0xa3, B: 0xba, A: 0xff}},
		{Code: 6, Label: "non_flowering_crop", Color: color.RGBA{R: 0xcc, G: 0xba, B: 0x7d, A: 0xff}},
		{Code: 7, Label: "flowering_crop", Color: color.RGBA{R: 0xd8, G: 0x93, B: 0x82, A: 0xff}},
		{Code: 8, Label: "canola", Color: color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}},
		{Code: 9, Label: "forest", Color: color.RGBA{R: 0x1c, G: 0x63, B: 0x30, A: 0xff}},
	}
}

// Reclassify returns a copy of the palette for a merged raster: the
// absorbed classes are dropped and the sentinel is appended, rendering in
// a neutral color with a blank legend label.
func (p Palette) Reclassify(absorbed ...uint8) Palette {
	if len(absorbed) == 0 {
		absorbed = []uint8{1, 6}
	}
	drop := make(map[uint8]bool, len(absorbed))
	for _, code := range absorbed {
		drop[code] = true
	}

	var out Palette
	for _, e := range p {
		if !drop[e.Code] {
			out = append(out, e)
		}
	}
	out = append(out, Entry{
		Code:   HiddenCode,
		Color:  color.RGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff},
		Hidden: true,
	})
	return out
}

// Reclassified returns the default palette after merging the absorbed
// classes into the sentinel.
func Reclassified(absorbed ...uint8) Palette {
	return Default().Reclassify(absorbed...)
}

// Color returns the color for a category code.
func (p Palette) Color(code uint8) (color.RGBA, bool) {
	for _, e := range p {
		if e.Code == code {
			return e.Color, true
		}
	}
	return color.RGBA{}, false
}

// Label returns the display label for a category code. Hidden entries
// report an empty label.
func (p Palette) Label(code uint8) string {
	for _, e := range p {
		if e.Code == code && !e.Hidden {
			return e.Label
		}
	}
	return ""
}

// Visible returns the entries that carry a legend label.
func (p Palette) Visible() []Entry {
	var out []Entry
	for _, e := range p {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	return out
}
