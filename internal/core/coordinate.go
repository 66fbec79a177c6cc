// Package core defines the grid model shared by the search engine and its collaborators.
package core

import "fmt"

// Coordinate is a cell position on the grid.
type Coordinate struct {
	X, Y int
}

// Add returns the element-wise sum of two coordinates.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y}
}

// Delta returns the absolute per-axis difference between a and b.
func Delta(a, b Coordinate) Coordinate {
	return Coordinate{X: abs(a.X - b.X), Y: abs(a.Y - b.Y)}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
