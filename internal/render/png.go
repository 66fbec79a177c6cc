package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Image colors.
var (
	ColorWalkable = color.RGBA{255, 255, 255, 255}
	ColorWall     = color.RGBA{40, 40, 40, 255}
	ColorUnknown  = color.RGBA{200, 170, 200, 255}
	ColorPath     = color.RGBA{66, 135, 245, 255}
	ColorStart    = color.RGBA{0, 200, 0, 255}
	ColorTarget   = color.RGBA{220, 0, 0, 255}
	ColorGridLine = color.RGBA{220, 220, 220, 255}
	ColorText     = color.RGBA{0, 0, 0, 255}
)

// captionHeight is the height of the caption band below the grid.
const captionHeight = 20

// Image draws grid and path onto a new gg context, scale pixels per cell.
func Image(g *core.Grid, start, target core.Coordinate, p core.Path, scale int) (*gg.Context, error) {
	if scale < 1 {
		return nil, fmt.Errorf("%w: scale %d must be positive", core.ErrConfiguration, scale)
	}
	s := float64(scale)
	dc := gg.NewContext(g.Width()*scale, g.Height()*scale+captionHeight)
	dc.SetColor(ColorWalkable)
	dc.Clear()

	for i, v := range g.Cells() {
		c := g.ToCoordinate(i)
		switch v {
		case core.CellWall:
			dc.SetColor(ColorWall)
		case core.CellWalkable, core.CellStart, core.CellTarget:
			dc.SetColor(ColorWalkable)
		default:
			dc.SetColor(ColorUnknown)
		}
		dc.DrawRectangle(float64(c.X)*s, float64(c.Y)*s, s, s)
		dc.Fill()
	}

	if scale >= 4 {
		dc.SetColor(ColorGridLine)
		dc.SetLineWidth(1)
		for x := 0; x <= g.Width(); x++ {
			dc.DrawLine(float64(x)*s, 0, float64(x)*s, float64(g.Height())*s)
		}
		for y := 0; y <= g.Height(); y++ {
			dc.DrawLine(0, float64(y)*s, float64(g.Width())*s, float64(y)*s)
		}
		dc.Stroke()
	}

	center := func(c core.Coordinate) (float64, float64) {
		return float64(c.X)*s + s/2, float64(c.Y)*s + s/2
	}

	if len(p) > 1 {
		dc.SetColor(ColorPath)
		dc.SetLineWidth(s / 3)
		dc.MoveTo(center(p[0]))
		for _, c := range p[1:] {
			dc.LineTo(center(c))
		}
		dc.Stroke()
	}

	dc.SetColor(ColorStart)
	x, y := center(start)
	dc.DrawCircle(x, y, s/2)
	dc.Fill()

	dc.SetColor(ColorTarget)
	x, y = center(target)
	dc.DrawCircle(x, y, s/2)
	dc.Fill()

	caption := "no path"
	if !p.IsEmpty() {
		caption = fmt.Sprintf("%d steps %v -> %v", p.Steps(), start, target)
	}
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(ColorText)
	dc.DrawStringAnchored(caption, 4, float64(g.Height())*s+captionHeight/2, 0, 0.5)

	return dc, nil
}

// EncodePNG renders the image and writes it to w as PNG.
func EncodePNG(w io.Writer, g *core.Grid, start, target core.Coordinate, p core.Path, scale int) error {
	dc, err := Image(g, start, target, p, scale)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders the image to a PNG file.
func SavePNG(path string, g *core.Grid, start, target core.Coordinate, p core.Path, scale int) error {
	dc, err := Image(g, start, target, p, scale)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}
