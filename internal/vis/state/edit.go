package state

import (
	"fmt"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/tilemap"
)

// EditAction is an undoable change to the map. Grids are immutable, so
// actions replace m.Grid rather than mutate it.
type EditAction interface {
	Do(m *tilemap.Map) error
	Undo(m *tilemap.Map) error
	Description() string
}

// EditMode selects what a click on the grid does.
type EditMode int

const (
	ModeView EditMode = iota
	ModeWalls
	ModeStart
	ModeTarget
)

func (m EditMode) String() string {
	switch m {
	case ModeWalls:
		return "walls"
	case ModeStart:
		return "start"
	case ModeTarget:
		return "target"
	}
	return "view"
}

// EditState holds the edit mode and the undo/redo history.
type EditState struct {
	Mode EditMode

	undoStack []EditAction
	redoStack []EditAction
}

// NewEditState creates an edit state in view mode.
func NewEditState() *EditState {
	return &EditState{Mode: ModeView}
}

// Execute applies action and pushes it on the undo stack.
func (e *EditState) Execute(action EditAction, m *tilemap.Map) error {
	if err := action.Do(m); err != nil {
		return err
	}
	e.undoStack = append(e.undoStack, action)
	e.redoStack = nil
	return nil
}

// Undo reverts the last action. It returns false when there is nothing
// to undo.
func (e *EditState) Undo(m *tilemap.Map) (bool, error) {
	if len(e.undoStack) == 0 {
		return false, nil
	}
	action := e.undoStack[len(e.undoStack)-1]
	if err := action.Undo(m); err != nil {
		return false, err
	}
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.redoStack = append(e.redoStack, action)
	return true, nil
}

// Redo reapplies the last undone action.
func (e *EditState) Redo(m *tilemap.Map) (bool, error) {
	if len(e.redoStack) == 0 {
		return false, nil
	}
	action := e.redoStack[len(e.redoStack)-1]
	if err := action.Do(m); err != nil {
		return false, err
	}
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.undoStack = append(e.undoStack, action)
	return true, nil
}

// CanUndo reports whether there is an action to undo.
func (e *EditState) CanUndo() bool { return len(e.undoStack) > 0 }

// CanRedo reports whether there is an action to redo.
func (e *EditState) CanRedo() bool { return len(e.redoStack) > 0 }

// ToggleWallAction turns a walkable cell into a wall or back.
type ToggleWallAction struct {
	At  core.Coordinate
	Old core.Cell
}

// NewToggleWallAction creates a toggle for the cell at c. Start and
// target cells cannot be walled.
func NewToggleWallAction(m *tilemap.Map, c core.Coordinate) (*ToggleWallAction, error) {
	old, err := m.Grid.At(c)
	if err != nil {
		return nil, err
	}
	if c == m.Start || c == m.Target {
		return nil, fmt.Errorf("%w: cannot wall the %v marker cell", core.ErrInvalidEndpoint, c)
	}
	return &ToggleWallAction{At: c, Old: old}, nil
}

func (a *ToggleWallAction) Do(m *tilemap.Map) error {
	next := core.CellWall
	if a.Old == core.CellWall {
		next = core.CellWalkable
	}
	return setCell(m, a.At, next)
}

func (a *ToggleWallAction) Undo(m *tilemap.Map) error {
	return setCell(m, a.At, a.Old)
}

func (a *ToggleWallAction) Description() string {
	return fmt.Sprintf("Toggle wall at %v", a.At)
}

// MoveMarkerAction moves the start or target marker to another cell.
type MoveMarkerAction struct {
	Target   bool // Move the target marker instead of the start
	From, To core.Coordinate
	oldTo    core.Cell
}

// NewMoveMarkerAction creates a move of the start (or target) marker to c.
// The destination must be inside, not a wall and not the other marker.
func NewMoveMarkerAction(m *tilemap.Map, target bool, c core.Coordinate) (*MoveMarkerAction, error) {
	v, err := m.Grid.At(c)
	if err != nil {
		return nil, err
	}
	from, other := m.Start, m.Target
	if target {
		from, other = m.Target, m.Start
	}
	if v == core.CellWall || c == other {
		return nil, fmt.Errorf("%w: cannot place marker on %v", core.ErrInvalidEndpoint, c)
	}
	return &MoveMarkerAction{Target: target, From: from, To: c, oldTo: v}, nil
}

func (a *MoveMarkerAction) marker() core.Cell {
	if a.Target {
		return core.CellTarget
	}
	return core.CellStart
}

func (a *MoveMarkerAction) place(m *tilemap.Map, c core.Coordinate) {
	if a.Target {
		m.Target = c
	} else {
		m.Start = c
	}
}

func (a *MoveMarkerAction) Do(m *tilemap.Map) error {
	if err := setCell(m, a.From, core.CellWalkable); err != nil {
		return err
	}
	if err := setCell(m, a.To, a.marker()); err != nil {
		return err
	}
	a.place(m, a.To)
	return nil
}

func (a *MoveMarkerAction) Undo(m *tilemap.Map) error {
	if err := setCell(m, a.To, a.oldTo); err != nil {
		return err
	}
	if err := setCell(m, a.From, a.marker()); err != nil {
		return err
	}
	a.place(m, a.From)
	return nil
}

func (a *MoveMarkerAction) Description() string {
	name := "start"
	if a.Target {
		name = "target"
	}
	return fmt.Sprintf("Move %s %v -> %v", name, a.From, a.To)
}

func setCell(m *tilemap.Map, c core.Coordinate, v core.Cell) error {
	g, err := m.Grid.WithCell(c, v)
	if err != nil {
		return err
	}
	m.Grid = g
	return nil
}
