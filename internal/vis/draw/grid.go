// Package draw renders the grid, search trace and path.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

// Cell and overlay colors.
var (
	ColorWalkable = color.NRGBA{R: 52, G: 56, B: 62, A: 255}
	ColorWall     = color.NRGBA{R: 18, G: 19, B: 22, A: 255}
	ColorUnknown  = color.NRGBA{R: 90, G: 60, B: 90, A: 255}
	ColorGridLine = color.NRGBA{R: 40, G: 45, B: 50, A: 255}
	ColorOpen     = color.NRGBA{R: 80, G: 160, B: 230, A: 110}
	ColorClosed   = color.NRGBA{R: 230, G: 170, B: 60, A: 90}
	ColorCurrent  = color.NRGBA{R: 255, G: 220, B: 80, A: 200}
	ColorPath     = color.NRGBA{R: 100, G: 220, B: 140, A: 255}
	ColorArrow    = color.NRGBA{R: 20, G: 70, B: 40, A: 255}
	ColorStart    = color.NRGBA{R: 80, G: 200, B: 100, A: 255}
	ColorTarget   = color.NRGBA{R: 230, G: 80, B: 80, A: 255}
)

// cellRect returns the screen rectangle of a cell, inset by pad pixels.
func cellRect(camera *interact.Camera, c core.Coordinate, pad float32) image.Rectangle {
	x, y := camera.CellOrigin(c)
	size := camera.CellScreenSize()
	return image.Rect(
		int(math.Round(float64(x+pad))),
		int(math.Round(float64(y+pad))),
		int(math.Round(float64(x+size-pad))),
		int(math.Round(float64(y+size-pad))),
	)
}

// visible reports whether r intersects the drawing area.
func visible(gtx layout.Context, r image.Rectangle) bool {
	return r.Overlaps(image.Rectangle{Max: gtx.Constraints.Max})
}

func fillCell(gtx layout.Context, camera *interact.Camera, c core.Coordinate, pad float32, col color.NRGBA) {
	r := cellRect(camera, c, pad)
	if r.Empty() || !visible(gtx, r) {
		return
	}
	paint.FillShape(gtx.Ops, col, clip.Rect(r).Op())
}

// DrawCells fills every cell by its classification. Gaps between cells
// show through as grid lines once cells are large enough.
func DrawCells(gtx layout.Context, g *core.Grid, camera *interact.Camera) {
	pad := float32(0)
	if camera.CellScreenSize() >= 6 {
		pad = 0.5
	}
	for i, v := range g.Cells() {
		col := ColorWalkable
		switch v {
		case core.CellWall:
			col = ColorWall
		case core.CellWalkable, core.CellStart, core.CellTarget:
		default:
			col = ColorUnknown
		}
		fillCell(gtx, camera, g.ToCoordinate(i), pad, col)
	}
}

// DrawFrame overlays the frontier and closed cells of a trace frame.
func DrawFrame(gtx layout.Context, f state.Frame, camera *interact.Camera) {
	for c := range f.Closed {
		fillCell(gtx, camera, c, 1, ColorClosed)
	}
	for c := range f.Open {
		fillCell(gtx, camera, c, 1, ColorOpen)
	}
	if f.HasCurrent {
		fillCell(gtx, camera, f.Current, camera.CellScreenSize()/4, ColorCurrent)
	}
}

// DrawMarkers draws the start and target markers.
func DrawMarkers(gtx layout.Context, start, target core.Coordinate, camera *interact.Camera) {
	r := camera.CellScreenSize() * 0.35
	x, y := camera.CellCenter(start)
	drawFilledCircle(gtx, x, y, r, ColorStart)
	x, y = camera.CellCenter(target)
	drawFilledCircle(gtx, x, y, r, ColorTarget)
}

// DrawHover outlines the cell under the pointer.
func DrawHover(gtx layout.Context, c core.Coordinate, camera *interact.Camera, col color.NRGBA) {
	r := cellRect(camera, c, 0)
	if r.Empty() {
		return
	}
	const w = 2
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w),
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y),
		image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		paint.FillShape(gtx.Ops, col, clip.Rect(edge).Op())
	}
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx+radius, cy))

	const segments = 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / segments
		path.LineTo(f32.Pt(cx+radius*float32(math.Cos(angle)), cy+radius*float32(math.Sin(angle))))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
