package render

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/rotisserie/eris"
	"golang.org/x/image/font/basicfont"
)

// Layout constants in canvas pixels.
const (
	margin    = 12.0
	titleH    = 20.0
	legendW   = 170.0
	legendRow = 18.0
	swatchPx  = 12.0
	markerPx  = 4.0
)

// viewport maps map units to canvas pixels, y-down.
type viewport struct {
	minX, maxY float64
	x0, y0     float64
	scale      float64 // pixels per map unit
}

func (v viewport) pt(x, y float64) (px, py float64) {
	return v.x0 + (x-v.minX)*v.scale, v.y0 + (v.maxY-y)*v.scale
}

// Render draws the panel to an image.
func (p *Panel) Render() (image.Image, error) {
	cellPx := p.opts.CellPx
	if cellPx <= 0 {
		cellPx = 1
	}

	mapW := float64(p.grid.W * cellPx)
	mapH := float64(p.grid.H * cellPx)

	top := margin
	if p.opts.Title != "" {
		top += titleH
	}
	width := margin + mapW + margin
	if p.opts.Legend {
		width += legendW
	}
	height := top + mapH + margin

	dc := gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	bounds := p.grid.Bounds()
	vp := viewport{
		minX:  bounds.MinX,
		maxY:  bounds.MaxY,
		x0:    margin,
		y0:    top,
		scale: float64(cellPx) / p.grid.CellW,
	}

	p.drawRaster(dc, cellPx)
	p.drawRings(dc, vp)
	p.drawMarker(dc, vp)

	if p.opts.Frame {
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1)
		dc.DrawRectangle(vp.x0, vp.y0, mapW, mapH)
		dc.Stroke()
	}
	if p.opts.ScaleBar {
		p.drawScaleBar(dc, vp, mapH)
	}
	if p.opts.Compass {
		drawCompass(dc, vp.x0+mapW-22, vp.y0+14)
	}
	if p.opts.Legend {
		p.drawLegend(dc, vp.x0+mapW+12, vp.y0)
	}
	if p.opts.Title != "" {
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(p.opts.Title, vp.x0+mapW/2, margin+titleH/2-2, 0.5, 0.5)
	}

	return dc.Image(), nil
}

func (p *Panel) drawRaster(dc *gg.Context, cellPx int) {
	for row := 0; row < p.grid.H; row++ {
		for col := 0; col < p.grid.W; col++ {
			code := p.grid.At(col, row)
			if code == 0 {
				continue // NoData stays background
			}
			c, ok := p.palette.Color(code)
			if !ok {
				continue
			}
			dc.SetColor(c)
			dc.DrawRectangle(
				margin+float64(col*cellPx),
				dcMapTop(p)+float64(row*cellPx),
				float64(cellPx), float64(cellPx),
			)
			dc.Fill()
		}
	}
}

func dcMapTop(p *Panel) float64 {
	if p.opts.Title != "" {
		return margin + titleH
	}
	return margin
}

func (p *Panel) drawRings(dc *gg.Context, vp viewport) {
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1.5)
	for _, ring := range p.rings {
		flat := ring.LinearRing(0).FlatCoords()
		for i := 0; i+1 < len(flat); i += 2 {
			x, y := vp.pt(flat[i], flat[i+1])
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.Stroke()
	}
}

func (p *Panel) drawMarker(dc *gg.Context, vp viewport) {
	if p.marker == nil {
		return
	}
	x, y := vp.pt(p.marker.X(), p.marker.Y())
	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(x, y, markerPx)
	dc.Fill()
}

func (p *Panel) drawScaleBar(dc *gg.Context, vp viewport, mapH float64) {
	lengthM := p.opts.ScaleBarM
	if lengthM <= 0 {
		lengthM = niceLength(p.grid.Bounds().Width() / 4)
	}
	barPx := lengthM * vp.scale
	x := vp.x0 + 10
	y := vp.y0 + mapH - 14

	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(x, y, barPx, 4)
	dc.Fill()
	dc.DrawStringAnchored(fmt.Sprintf("%.0f m", lengthM), x+barPx/2, y-7, 0.5, 0.5)
}

func (p *Panel) drawLegend(dc *gg.Context, x, y float64) {
	for i, e := range p.LegendEntries() {
		ry := y + float64(i)*legendRow
		dc.SetColor(e.Color)
		dc.DrawRectangle(x, ry, swatchPx, swatchPx)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(0.5)
		dc.DrawRectangle(x, ry, swatchPx, swatchPx)
		dc.Stroke()
		if !e.Hidden {
			dc.DrawString(e.Label, x+swatchPx+6, ry+swatchPx-2)
		}
	}
}

func drawCompass(dc *gg.Context, cx, cy float64) {
	dc.SetRGB(0, 0, 0)
	dc.MoveTo(cx, cy-10)
	dc.LineTo(cx-6, cy+6)
	dc.LineTo(cx+6, cy+6)
	dc.ClosePath()
	dc.Fill()
	dc.DrawStringAnchored("N", cx, cy+14, 0.5, 0.5)
}

// niceLength rounds target down to a 1/2/5 x 10^k value.
func niceLength(target float64) float64 {
	if target <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(target)))
	for _, m := range []float64{5, 2, 1} {
		if m*mag <= target {
			return m * mag
		}
	}
	return mag
}

// SideBySide arranges panels into a single multi-panel figure.
func SideBySide(panels ...*Panel) (image.Image, error) {
	if len(panels) == 0 {
		return nil, eris.New("render: no panels")
	}

	images := make([]image.Image, 0, len(panels))
	width, height := 0, 0
	for _, p := range panels {
		img, err := p.Render()
		if err != nil {
			return nil, err
		}
		images = append(images, img)
		width += img.Bounds().Dx()
		if img.Bounds().Dy() > height {
			height = img.Bounds().Dy()
		}
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	x := 0
	for _, img := range images {
		dc.DrawImage(img, x, 0)
		x += img.Bounds().Dx()
	}
	return dc.Image(), nil
}

// WritePNG serializes a composed figure to a PNG file.
func WritePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return eris.Wrapf(err, "render: save %s", path)
	}
	return nil
}
