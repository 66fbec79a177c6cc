// Package state manages the viewer state.
package state

import (
	"fmt"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/tilemap"
)

// Weight bounds accepted by the viewer.
const (
	MinWeight = 0
	MaxWeight = 50
)

// State holds everything the viewer shows.
type State struct {
	Map       *tilemap.Map
	Heuristic algo.HeuristicKind
	Weight    int

	Result algo.Result
	Err    error // Last search or edit error, shown in the status line

	Trace    *TraceState
	Playback *PlaybackState
	Edit     *EditState
}

// NewState creates the viewer state for m. The map is copied so edits
// never touch the caller's value.
func NewState(m *tilemap.Map, kind algo.HeuristicKind, weight int) *State {
	own := *m
	return &State{
		Map:       &own,
		Heuristic: kind,
		Weight:    clampWeight(weight),
		Trace:     NewTraceState(),
		Playback:  NewPlaybackState(0),
		Edit:      NewEditState(),
	}
}

// SetResult stores a finished search and loads its trace for playback.
func (s *State) SetResult(res algo.Result, err error) {
	s.Result = res
	s.Err = err
	s.Trace.Finish()
	s.Playback.Load(s.Trace.Len())
}

// CycleHeuristic switches to the next heuristic kind.
func (s *State) CycleHeuristic() {
	s.Heuristic = s.Heuristic.Next()
}

// AdjustWeight changes the weight by delta within [MinWeight, MaxWeight].
func (s *State) AdjustWeight(delta int) {
	s.Weight = clampWeight(s.Weight + delta)
}

// Status summarizes the last search for the status line.
func (s *State) Status() string {
	if !s.Trace.Done() {
		return "searching..."
	}
	if s.Err != nil {
		return s.Err.Error()
	}
	summary := fmt.Sprintf("%s w=%d: ", s.Heuristic, s.Weight)
	if !s.Result.Found {
		return summary + fmt.Sprintf("no path, %d cells expanded", s.Result.Stats.Expanded)
	}
	return summary + fmt.Sprintf("%d steps, %d cells expanded", s.Result.Path.Steps(), s.Result.Stats.Expanded)
}

// CurrentFrame returns the search trace at the playback position.
func (s *State) CurrentFrame() Frame {
	return s.Trace.Frame(s.Playback.Step())
}

// Click applies the current edit mode to cell c. It reports whether the
// map changed.
func (s *State) Click(c core.Coordinate) bool {
	if !s.Map.Grid.IsInside(c) {
		return false
	}
	var (
		action EditAction
		err    error
	)
	switch s.Edit.Mode {
	case ModeWalls:
		action, err = NewToggleWallAction(s.Map, c)
	case ModeStart:
		action, err = NewMoveMarkerAction(s.Map, false, c)
	case ModeTarget:
		action, err = NewMoveMarkerAction(s.Map, true, c)
	default:
		return false
	}
	if err == nil {
		err = s.Edit.Execute(action, s.Map)
	}
	if err != nil {
		s.Err = err
		return false
	}
	return true
}

// Undo reverts the last edit, reporting whether the map changed.
func (s *State) Undo() bool {
	ok, err := s.Edit.Undo(s.Map)
	if err != nil {
		s.Err = err
	}
	return ok
}

// Redo reapplies the last undone edit, reporting whether the map changed.
func (s *State) Redo() bool {
	ok, err := s.Edit.Redo(s.Map)
	if err != nil {
		s.Err = err
	}
	return ok
}

func clampWeight(w int) int {
	if w < MinWeight {
		return MinWeight
	}
	if w > MaxWeight {
		return MaxWeight
	}
	return w
}
