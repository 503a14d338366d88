package raster

import (
	"github.com/twpayne/go-geom"
)

// BBox is an axis-aligned bounding box in the raster's reference system.
type BBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// FromBounds converts go-geom bounds to a BBox.
func FromBounds(b *geom.Bounds) BBox {
	return BBox{
		MinX: b.Min(0),
		MinY: b.Min(1),
		MaxX: b.Max(0),
		MaxY: b.Max(1),
	}
}

// Width returns the box extent along x.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box extent along y.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Pad scales the box about its center by the given factor.
func (b BBox) Pad(factor float64) BBox {
	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2
	hw := b.Width() / 2 * factor
	hh := b.Height() / 2 * factor
	return BBox{MinX: cx - hw, MinY: cy - hh, MaxX: cx + hw, MaxY: cy + hh}
}

// Covers reports whether the box fully contains other.
func (b BBox) Covers(other BBox) bool {
	return b.MinX <= other.MinX && b.MinY <= other.MinY &&
		b.MaxX >= other.MaxX && b.MaxY >= other.MaxY
}
