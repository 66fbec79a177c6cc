// Package vis implements a Gio viewer that replays grid searches step by
// step and lets the map be edited.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/tilemap"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
	"github.com/elektrokombinacija/gridpath/internal/vis/observer"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
	"github.com/elektrokombinacija/gridpath/internal/vis/widgets"
)

// App is the viewer application.
type App struct {
	state     *state.State
	theme     *material.Theme
	workspace *widgets.Workspace
	timeline  *widgets.Timeline
	toolbar   *widgets.Toolbar
	camera    *interact.Camera
}

// NewApp creates a viewer for m and runs the initial search. A nil map
// opens the built-in demo map.
func NewApp(m *tilemap.Map, kind algo.HeuristicKind, weight int) *App {
	if m == nil {
		m = DemoMap()
	}
	st := state.NewState(m, kind, weight)
	camera := interact.NewCamera()

	a := &App{
		state:  st,
		theme:  material.NewTheme(),
		camera: camera,
	}
	a.workspace = widgets.NewWorkspace(st, camera, a.rerun)
	a.timeline = widgets.NewTimeline(st)
	a.toolbar = widgets.NewToolbar(st, a.rerun)

	a.rerun()
	return a
}

func (a *App) rerun() {
	observer.Rerun(a.state)
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	pb := a.state.Playback
	switch e.Name {
	case key.NameSpace:
		pb.TogglePlay()
	case key.NameLeftArrow:
		pb.StepBack()
	case key.NameRightArrow:
		pb.StepForward()
	case key.NameHome:
		pb.Reset()
	case key.NameEnd:
		pb.Pause()
		pb.Seek(float64(pb.Length))
	case "H":
		a.state.CycleHeuristic()
		a.rerun()
	case "+", "=":
		a.state.AdjustWeight(1)
		a.rerun()
	case "-":
		a.state.AdjustWeight(-1)
		a.rerun()
	case "R":
		a.workspace.Refit()
	case "Z":
		if e.Modifiers.Contain(key.ModCtrl) && a.state.Undo() {
			a.rerun()
		}
	case "Y":
		if e.Modifiers.Contain(key.ModCtrl) && a.state.Redo() {
			a.rerun()
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.workspace.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}

// DemoMap returns a 24x16 map with a few walls between the corners.
func DemoMap() *tilemap.Map {
	rows := []string{
		"S.......................",
		"........................",
		"....#############.......",
		"................#.......",
		"................#.......",
		"..#######.......#.......",
		"........#.......#.......",
		"........#.......#####...",
		"........#...............",
		"........#...............",
		"..............######....",
		"###########.............",
		"..........#.............",
		"..........#......#######",
		"..........#.............",
		"..........#............T",
	}
	g, err := core.GridFromRows(rows...)
	if err != nil {
		panic(err)
	}
	return &tilemap.Map{
		Grid:       g,
		Start:      core.Coordinate{X: 0, Y: 0},
		Target:     core.Coordinate{X: 23, Y: 15},
		TileWidth:  g.Width(),
		TileHeight: g.Height(),
	}
}
