// Package widgets provides Gio UI widgets for the viewer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/vis/draw"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

// Workspace is the grid view.
type Workspace struct {
	state    *state.State
	camera   *interact.Camera
	onChange func()

	fitted   bool
	hover    core.Coordinate
	hovering bool
}

// NewWorkspace creates the grid view. onChange runs after every edit.
func NewWorkspace(st *state.State, camera *interact.Camera, onChange func()) *Workspace {
	return &Workspace{
		state:    st,
		camera:   camera,
		onChange: onChange,
	}
}

// Refit makes the next frame fit the grid to the view.
func (w *Workspace) Refit() {
	w.fitted = false
}

// Layout renders the workspace.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	g := w.state.Map.Grid
	if !w.fitted && bounds.X > 0 && bounds.Y > 0 {
		w.camera.FitGrid(g.Width(), g.Height(), float32(bounds.X), float32(bounds.Y), 20)
		w.fitted = true
	}

	w.handlePointerEvents(gtx)

	draw.DrawCells(gtx, g, w.camera)
	frame := w.state.CurrentFrame()
	draw.DrawFrame(gtx, frame, w.camera)
	draw.DrawPath(gtx, frame.Path, w.camera, draw.ColorPath)
	draw.DrawMarkers(gtx, w.state.Map.Start, w.state.Map.Target, w.camera)

	if w.hovering && w.state.Edit.Mode != state.ModeView && g.IsInside(w.hover) {
		draw.DrawHover(gtx, w.hover, w.camera, color.NRGBA{R: 255, G: 255, B: 255, A: 120})
	}

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll | pointer.Move | pointer.Leave,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.handlePointerEvent(pe)
		}
	}
}

func (w *Workspace) handlePointerEvent(ev pointer.Event) {
	w.camera.HandleEvent(ev)

	switch ev.Kind {
	case pointer.Move, pointer.Drag:
		w.hover = w.camera.CellAt(ev.Position.X, ev.Position.Y)
		w.hovering = true

	case pointer.Leave:
		w.hovering = false

	case pointer.Press:
		if !ev.Buttons.Contain(pointer.ButtonPrimary) {
			return
		}
		cell := w.camera.CellAt(ev.Position.X, ev.Position.Y)
		if w.state.Click(cell) && w.onChange != nil {
			w.onChange()
		}
	}
}
