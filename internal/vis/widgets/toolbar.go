package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

// Toolbar provides playback, search and edit controls.
type Toolbar struct {
	state    *state.State
	onChange func()

	playBtn     widget.Clickable
	resetBtn    widget.Clickable
	stepFwdBtn  widget.Clickable
	stepBackBtn widget.Clickable
	endBtn      widget.Clickable
	slowerBtn   widget.Clickable
	fasterBtn   widget.Clickable

	heuristicBtn  widget.Clickable
	weightDownBtn widget.Clickable
	weightUpBtn   widget.Clickable

	viewModeBtn   widget.Clickable
	wallModeBtn   widget.Clickable
	startModeBtn  widget.Clickable
	targetModeBtn widget.Clickable
	undoBtn       widget.Clickable
	redoBtn       widget.Clickable
}

// NewToolbar creates a toolbar. onChange runs whenever the search inputs
// change.
func NewToolbar(st *state.State, onChange func()) *Toolbar {
	return &Toolbar{state: st, onChange: onChange}
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(48))
	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255}, clip.Rect(rect).Op())

	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutPlaybackControls(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSearchControls(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutEditControls(gtx, th)
			}),
		)
	})
}

func (t *Toolbar) layoutPlaybackControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	playIcon := ">"
	if t.state.Playback.Playing {
		playIcon = "||"
	}
	return t.row(gtx, 4,
		t.button(th, &t.resetBtn, "[]", false),
		t.button(th, &t.stepBackBtn, "|<", false),
		t.button(th, &t.playBtn, playIcon, false),
		t.button(th, &t.stepFwdBtn, ">|", false),
		t.button(th, &t.endBtn, ">>", false),
		t.button(th, &t.slowerBtn, "-", false),
		t.button(th, &t.fasterBtn, "+", false),
	)
}

func (t *Toolbar) layoutSearchControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return t.row(gtx, 4,
		t.button(th, &t.heuristicBtn, t.state.Heuristic.String(), true),
		t.button(th, &t.weightDownBtn, "w-", false),
		func(gtx layout.Context) layout.Dimensions {
			label := material.Label(th, 12, fmt.Sprintf("w=%d", t.state.Weight))
			label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
			return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, label.Layout)
		},
		t.button(th, &t.weightUpBtn, "w+", false),
	)
}

func (t *Toolbar) layoutEditControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	mode := t.state.Edit.Mode
	return t.row(gtx, 2,
		t.button(th, &t.viewModeBtn, "View", mode == state.ModeView),
		t.button(th, &t.wallModeBtn, "Walls", mode == state.ModeWalls),
		t.button(th, &t.startModeBtn, "Start", mode == state.ModeStart),
		t.button(th, &t.targetModeBtn, "Target", mode == state.ModeTarget),
		t.button(th, &t.undoBtn, "<-", false),
		t.button(th, &t.redoBtn, "->", false),
	)
}

// row lays widgets out horizontally with gap dp between them.
func (t *Toolbar) row(gtx layout.Context, gap unit.Dp, widgets ...layout.Widget) layout.Dimensions {
	children := make([]layout.FlexChild, 0, 2*len(widgets))
	for i, w := range widgets {
		if i > 0 {
			children = append(children, layout.Rigid(layout.Spacer{Width: gap}.Layout))
		}
		children = append(children, layout.Rigid(w))
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

func (t *Toolbar) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) button(th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
		if active {
			bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
		}
		if btn.Hovered() {
			bg.R = minU8(bg.R+15, 255)
			bg.G = minU8(bg.G+15, 255)
			bg.B = minU8(bg.B+15, 255)
		}

		return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Background{}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					rect := image.Rectangle{Max: gtx.Constraints.Min}
					paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
					return layout.Dimensions{Size: gtx.Constraints.Min}
				},
				func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Min = image.Point{X: gtx.Dp(32), Y: gtx.Dp(28)}
					return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							label := material.Label(th, 12, text)
							label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
							return label.Layout(gtx)
						})
					})
				},
			)
		})
	}
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	pb := t.state.Playback
	for t.playBtn.Clicked(gtx) {
		pb.TogglePlay()
	}
	for t.resetBtn.Clicked(gtx) {
		pb.Reset()
	}
	for t.stepFwdBtn.Clicked(gtx) {
		pb.StepForward()
	}
	for t.stepBackBtn.Clicked(gtx) {
		pb.StepBack()
	}
	for t.endBtn.Clicked(gtx) {
		pb.Pause()
		pb.Seek(float64(pb.Length))
	}
	for t.slowerBtn.Clicked(gtx) {
		pb.SetRate(pb.Rate / 1.5)
	}
	for t.fasterBtn.Clicked(gtx) {
		pb.SetRate(pb.Rate * 1.5)
	}

	changed := false
	for t.heuristicBtn.Clicked(gtx) {
		t.state.CycleHeuristic()
		changed = true
	}
	for t.weightDownBtn.Clicked(gtx) {
		t.state.AdjustWeight(-1)
		changed = true
	}
	for t.weightUpBtn.Clicked(gtx) {
		t.state.AdjustWeight(1)
		changed = true
	}

	for t.viewModeBtn.Clicked(gtx) {
		t.state.Edit.Mode = state.ModeView
	}
	for t.wallModeBtn.Clicked(gtx) {
		t.state.Edit.Mode = state.ModeWalls
	}
	for t.startModeBtn.Clicked(gtx) {
		t.state.Edit.Mode = state.ModeStart
	}
	for t.targetModeBtn.Clicked(gtx) {
		t.state.Edit.Mode = state.ModeTarget
	}
	for t.undoBtn.Clicked(gtx) {
		changed = t.state.Undo() || changed
	}
	for t.redoBtn.Clicked(gtx) {
		changed = t.state.Redo() || changed
	}

	if changed && t.onChange != nil {
		t.onChange()
	}
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
