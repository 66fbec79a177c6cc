package state

import (
	"errors"
	"testing"
	"time"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/tilemap"
)

func createMap(t *testing.T) *tilemap.Map {
	t.Helper()
	g, err := core.GridFromRows(
		"S..",
		".#.",
		"..T",
	)
	if err != nil {
		t.Fatal(err)
	}
	return &tilemap.Map{
		Grid:       g,
		Start:      core.Coordinate{X: 0, Y: 0},
		Target:     core.Coordinate{X: 2, Y: 2},
		TileWidth:  3,
		TileHeight: 3,
	}
}

func TestTraceFrame(t *testing.T) {
	tr := NewTraceState()
	a, b, c := core.Coordinate{X: 0, Y: 0}, core.Coordinate{X: 1, Y: 0}, core.Coordinate{X: 0, Y: 1}
	tr.Push(a, 4)
	tr.Expand(a)
	tr.Push(b, 4)
	tr.Push(c, 4)
	tr.Found(core.Path{a, b})

	tests := []struct {
		n           int
		open        int
		closed      int
		wantCurrent bool
		wantPath    bool
	}{
		{0, 0, 0, false, false},
		{1, 1, 0, false, false},
		{2, 0, 1, true, false},
		{4, 2, 1, true, false},
		{5, 2, 1, true, true},
		{99, 2, 1, true, true},
	}
	for _, tt := range tests {
		f := tr.Frame(tt.n)
		if len(f.Open) != tt.open || len(f.Closed) != tt.closed {
			t.Errorf("Frame(%d): open=%d closed=%d, want %d %d", tt.n, len(f.Open), len(f.Closed), tt.open, tt.closed)
		}
		if f.HasCurrent != tt.wantCurrent {
			t.Errorf("Frame(%d).HasCurrent = %v, want %v", tt.n, f.HasCurrent, tt.wantCurrent)
		}
		if (len(f.Path) > 0) != tt.wantPath {
			t.Errorf("Frame(%d).Path = %v", tt.n, f.Path)
		}
	}

	tr.Start()
	if tr.Len() != 0 || tr.Done() {
		t.Errorf("Start left %d events, done=%v", tr.Len(), tr.Done())
	}
}

func TestPlayback(t *testing.T) {
	p := NewPlaybackState(10)
	p.StepForward()
	p.StepForward()
	if p.Step() != 2 {
		t.Errorf("Step = %d, want 2", p.Step())
	}
	p.StepBack()
	p.StepBack()
	p.StepBack()
	if p.Step() != 0 {
		t.Errorf("Step after stepping back past 0 = %d, want 0", p.Step())
	}

	p.SetRate(5)
	p.Playing = true
	p.advanceBy(time.Second)
	if p.Step() != 5 || !p.Playing {
		t.Errorf("after 1s at 5/s: step=%d playing=%v", p.Step(), p.Playing)
	}
	p.advanceBy(10 * time.Second)
	if !p.AtEnd() || p.Playing {
		t.Errorf("playback should stop at end: step=%d playing=%v", p.Step(), p.Playing)
	}

	// Playing from the end restarts.
	p.TogglePlay()
	if p.Step() != 0 || !p.Playing {
		t.Errorf("TogglePlay at end: step=%d playing=%v", p.Step(), p.Playing)
	}

	p.Load(3)
	if p.Step() != 3 || p.Playing {
		t.Errorf("Load: step=%d playing=%v, want 3 false", p.Step(), p.Playing)
	}
	if p.Progress() != 1 {
		t.Errorf("Progress = %v, want 1", p.Progress())
	}

	p.SetRate(0)
	if p.Rate != 1 {
		t.Errorf("Rate = %v, want clamp to 1", p.Rate)
	}
}

func TestToggleWallUndoRedo(t *testing.T) {
	st := NewState(createMap(t), algo.KindManhattan, 1)
	st.Edit.Mode = ModeWalls
	c := core.Coordinate{X: 1, Y: 0}
	original := st.Map.Grid

	if !st.Click(c) {
		t.Fatalf("Click: %v", st.Err)
	}
	if blocked, _ := st.Map.Grid.IsBlocked(c); !blocked {
		t.Error("cell not walled after click")
	}
	if blocked, _ := original.IsBlocked(c); blocked {
		t.Error("edit mutated the previous grid")
	}

	if ok := st.Undo(); !ok {
		t.Fatal("Undo reported no change")
	}
	if v, _ := st.Map.Grid.At(c); v != core.CellWalkable {
		t.Errorf("after undo cell = %v, want walkable", v)
	}
	if ok := st.Redo(); !ok {
		t.Fatal("Redo reported no change")
	}
	if blocked, _ := st.Map.Grid.IsBlocked(c); !blocked {
		t.Error("cell not walled after redo")
	}
	if st.Redo() {
		t.Error("Redo with empty stack reported a change")
	}

	// Toggling an existing wall opens it.
	if !st.Click(core.Coordinate{X: 1, Y: 1}) {
		t.Fatalf("Click: %v", st.Err)
	}
	if blocked, _ := st.Map.Grid.IsBlocked(core.Coordinate{X: 1, Y: 1}); blocked {
		t.Error("wall not removed")
	}
	if st.Edit.CanRedo() {
		t.Error("new edit should clear the redo stack")
	}
}

func TestClickRejectsMarkers(t *testing.T) {
	st := NewState(createMap(t), algo.KindManhattan, 1)
	st.Edit.Mode = ModeWalls
	if st.Click(st.Map.Start) {
		t.Error("walled the start cell")
	}
	if !errors.Is(st.Err, core.ErrInvalidEndpoint) {
		t.Errorf("Err = %v, want ErrInvalidEndpoint", st.Err)
	}
	if st.Click(core.Coordinate{X: 5, Y: 5}) {
		t.Error("click outside the grid changed the map")
	}

	st.Edit.Mode = ModeView
	if st.Click(core.Coordinate{X: 1, Y: 0}) {
		t.Error("view mode changed the map")
	}
}

func TestMoveMarker(t *testing.T) {
	st := NewState(createMap(t), algo.KindManhattan, 1)
	st.Edit.Mode = ModeStart
	to := core.Coordinate{X: 2, Y: 0}

	if !st.Click(to) {
		t.Fatalf("Click: %v", st.Err)
	}
	if st.Map.Start != to {
		t.Errorf("Start = %v, want %v", st.Map.Start, to)
	}
	if v, _ := st.Map.Grid.At(to); v != core.CellStart {
		t.Errorf("new start cell = %v", v)
	}
	if v, _ := st.Map.Grid.At(core.Coordinate{}); v != core.CellWalkable {
		t.Errorf("old start cell = %v, want walkable", v)
	}

	st.Undo()
	if st.Map.Start != (core.Coordinate{}) {
		t.Errorf("after undo Start = %v, want (0,0)", st.Map.Start)
	}
	if v, _ := st.Map.Grid.At(to); v != core.CellWalkable {
		t.Errorf("after undo cell %v = %v, want walkable", to, v)
	}

	st.Edit.Mode = ModeTarget
	if st.Click(core.Coordinate{X: 1, Y: 1}) {
		t.Error("moved target onto a wall")
	}
	if st.Click(st.Map.Start) {
		t.Error("moved target onto the start")
	}
}

func TestNewStateCopiesMap(t *testing.T) {
	m := createMap(t)
	st := NewState(m, algo.KindEuclidean, 99)
	st.Edit.Mode = ModeStart
	st.Click(core.Coordinate{X: 1, Y: 0})
	if m.Start != (core.Coordinate{}) {
		t.Error("editing the state changed the caller's map")
	}
	if st.Weight != MaxWeight {
		t.Errorf("Weight = %d, want clamp to %d", st.Weight, MaxWeight)
	}

	st.AdjustWeight(-1000)
	if st.Weight != MinWeight {
		t.Errorf("Weight = %d, want %d", st.Weight, MinWeight)
	}
	st.CycleHeuristic()
	if st.Heuristic != algo.KindEuclideanSquared {
		t.Errorf("Heuristic = %v", st.Heuristic)
	}
}

func TestStatus(t *testing.T) {
	st := NewState(createMap(t), algo.KindManhattan, 1)
	if got := st.Status(); got != "searching..." {
		t.Errorf("Status before any result = %q, want %q", got, "searching...")
	}

	path := core.Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}
	tests := []struct {
		name string
		res  algo.Result
		err  error
		want string
	}{
		{"found", algo.Result{Path: path, Found: true, Stats: algo.Stats{Expanded: 4}}, nil, "manhattan w=1: 4 steps, 4 cells expanded"},
		{"unreachable", algo.Result{Path: core.Path{}, Stats: algo.Stats{Expanded: 3}}, nil, "manhattan w=1: no path, 3 cells expanded"},
		{"error", algo.Result{}, errors.New("start is a wall"), "start is a wall"},
	}
	for _, tt := range tests {
		st.Trace.Start()
		st.SetResult(tt.res, tt.err)
		if got := st.Status(); got != tt.want {
			t.Errorf("%s: Status = %q, want %q", tt.name, got, tt.want)
		}
	}
}
