package core

import (
	"fmt"
	"math"
)

// Cell is the raw classification of a tile as read from a tile map.
type Cell int

// Well-known cell values. Only CellWall is interpreted by the search engine;
// the others are markers used by the map loader and the renderers.
const (
	CellWalkable Cell = -1
	CellStart    Cell = 0
	CellWall     Cell = 3
	CellTarget   Cell = 8
)

// Grid is a rectangular, row-major cell map. It is read-only after
// construction and safe to share between concurrent searches.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates a grid from a row-major cell slice. The slice is copied.
func NewGrid(width, height int, cells []Cell) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrConfiguration, width, height)
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: dimensions %dx%d overflow the cell count", ErrConfiguration, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid, want %d",
			ErrConfiguration, len(cells), width, height, width*height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, len(cells)),
	}
	copy(g.cells, cells)
	return g, nil
}

// GridFromRows builds a grid from a textual picture, one string per row:
// '#' or 'X' is a wall, '.' is walkable, 'S' is the start marker and 'T'
// the target marker.
func GridFromRows(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrConfiguration)
	}
	width := len(rows[0])
	cells := make([]Cell, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrConfiguration, y, len(row), width)
		}
		for x, ch := range row {
			switch ch {
			case '#', 'X':
				cells = append(cells, CellWall)
			case '.':
				cells = append(cells, CellWalkable)
			case 'S':
				cells = append(cells, CellStart)
			case 'T':
				cells = append(cells, CellTarget)
			default:
				return nil, fmt.Errorf("%w: unknown cell %q at (%d,%d)", ErrConfiguration, ch, x, y)
			}
		}
	}
	return NewGrid(width, len(rows), cells)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// IsInside reports whether c lies within the grid bounds.
func (g *Grid) IsInside(c Coordinate) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// ToIndex converts a coordinate to its row-major index.
func (g *Grid) ToIndex(c Coordinate) int {
	return c.Y*g.width + c.X
}

// ToCoordinate converts a row-major index back to a coordinate.
func (g *Grid) ToCoordinate(i int) Coordinate {
	return Coordinate{X: i % g.width, Y: i / g.width}
}

// At returns the cell classification at c.
func (g *Grid) At(c Coordinate) (Cell, error) {
	if !g.IsInside(c) {
		return 0, fmt.Errorf("%w: %v not inside %dx%d grid", ErrOutOfRange, c, g.width, g.height)
	}
	return g.cells[g.ToIndex(c)], nil
}

// IsBlocked reports whether c is a wall. Coordinates outside the grid
// return an error wrapping ErrOutOfRange.
func (g *Grid) IsBlocked(c Coordinate) (bool, error) {
	v, err := g.At(c)
	if err != nil {
		return false, err
	}
	return v == CellWall, nil
}

// Cells returns a copy of the row-major cell data.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Find returns the first cell, in row-major order, holding v.
func (g *Grid) Find(v Cell) (Coordinate, bool) {
	for i, c := range g.cells {
		if c == v {
			return g.ToCoordinate(i), true
		}
	}
	return Coordinate{}, false
}

// WithCell returns a copy of the grid with c set to v.
func (g *Grid) WithCell(c Coordinate, v Cell) (*Grid, error) {
	if !g.IsInside(c) {
		return nil, fmt.Errorf("%w: %v not inside %dx%d grid", ErrOutOfRange, c, g.width, g.height)
	}
	out := &Grid{width: g.width, height: g.height, cells: g.Cells()}
	out.cells[out.ToIndex(c)] = v
	return out, nil
}

// CountBlocked returns the number of wall cells.
func (g *Grid) CountBlocked() int {
	n := 0
	for _, c := range g.cells {
		if c == CellWall {
			n++
		}
	}
	return n
}
