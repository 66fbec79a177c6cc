package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
)

// DrawPath draws a path through cell centers with an arrow on each step.
func DrawPath(gtx layout.Context, p core.Path, camera *interact.Camera, col color.NRGBA) {
	if len(p) < 2 {
		return
	}
	size := camera.CellScreenSize()
	width := size / 6
	if width < 1 {
		width = 1
	}

	for i := 0; i < len(p)-1; i++ {
		x1, y1 := camera.CellCenter(p[i])
		x2, y2 := camera.CellCenter(p[i+1])
		drawPathSegment(gtx, x1, y1, x2, y2, width, col)
	}

	// Arrows get lost on small cells.
	if size < 12 {
		return
	}
	for i := 0; i < len(p)-1; i++ {
		x1, y1 := camera.CellCenter(p[i])
		x2, y2 := camera.CellCenter(p[i+1])
		dx := float64(p[i+1].X - p[i].X)
		dy := float64(p[i+1].Y - p[i].Y)
		drawArrow(gtx, (x1+x2)/2, (y1+y2)/2, dx, dy, size/5, ColorArrow)
	}
}

func drawPathSegment(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// drawArrow draws a triangle at (x, y) pointing along the unit direction
// (dirX, dirY).
func drawArrow(gtx layout.Context, x, y float32, dirX, dirY float64, size float32, col color.NRGBA) {
	ux, uy := float32(dirX), float32(dirY)
	tipX, tipY := x+ux*size, y+uy*size
	baseX, baseY := x-ux*size*0.5, y-uy*size*0.5
	perpX, perpY := -uy*size*0.7, ux*size*0.7

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(tipX, tipY))
	path.LineTo(f32.Pt(baseX+perpX, baseY+perpY))
	path.LineTo(f32.Pt(baseX-perpX, baseY-perpY))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
