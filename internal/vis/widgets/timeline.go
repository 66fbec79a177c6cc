package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

// Timeline scrubs through the recorded search and shows its outcome.
type Timeline struct {
	state    *state.State
	dragging bool
}

// NewTimeline creates a timeline widget.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{state: st}
}

const timelineMargin = 20

// Layout renders the timeline.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(60))
	width := gtx.Constraints.Max.X

	rect := image.Rect(0, 0, width, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	trackWidth := width - 2*timelineMargin
	t.handlePointerEvents(gtx, height, trackWidth)

	trackY := height * 2 / 3
	trackHeight := 6
	trackRect := image.Rect(timelineMargin, trackY-trackHeight/2, timelineMargin+trackWidth, trackY+trackHeight/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(trackRect).Op())

	fillWidth := int(float64(trackWidth) * t.state.Playback.Progress())
	if fillWidth > 0 {
		fillRect := image.Rect(timelineMargin, trackY-trackHeight/2, timelineMargin+fillWidth, trackY+trackHeight/2)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255}, clip.Rect(fillRect).Op())
	}

	headX := timelineMargin + fillWidth
	headSize := 12
	headRect := image.Rect(headX-headSize/2, trackY-headSize/2, headX+headSize/2, trackY+headSize/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, clip.Rect(headRect).Op())

	t.drawLabels(gtx, th)

	return layout.Dimensions{Size: image.Point{X: width, Y: height}}
}

func (t *Timeline) drawLabels(gtx layout.Context, th *material.Theme) {
	pb := t.state.Playback

	stepLabel := material.Label(th, 12, fmt.Sprintf("event %d / %d", pb.Step(), pb.Length))
	stepLabel.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

	statusLabel := material.Label(th, 12, t.state.Status())
	statusLabel.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}
	if t.state.Err != nil {
		statusLabel.Color = color.NRGBA{R: 230, G: 110, B: 110, A: 255}
	}

	rateLabel := material.Label(th, 12, fmt.Sprintf("%.0f/s", pb.Rate))
	rateLabel.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}

	layout.Inset{Top: unit.Dp(4), Left: unit.Dp(timelineMargin), Right: unit.Dp(timelineMargin)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(stepLabel.Layout),
			layout.Rigid(statusLabel.Layout),
			layout.Rigid(rateLabel.Layout),
		)
	})
}

func (t *Timeline) handlePointerEvents(gtx layout.Context, height, trackWidth int) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			t.dragging = true
			t.seek(pe.Position.X, trackWidth)
		case pointer.Drag:
			if t.dragging {
				t.seek(pe.Position.X, trackWidth)
			}
		case pointer.Release:
			t.dragging = false
		}
	}
}

func (t *Timeline) seek(screenX float32, trackWidth int) {
	if trackWidth <= 0 {
		return
	}
	progress := (float64(screenX) - timelineMargin) / float64(trackWidth)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	pb := t.state.Playback
	pb.Pause()
	pb.Seek(progress * float64(pb.Length))
}
