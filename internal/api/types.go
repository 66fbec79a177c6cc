package api

import (
	"encoding/json"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Point is a JSON grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) coordinate() core.Coordinate { return core.Coordinate{X: p.X, Y: p.Y} }

func pointOf(c core.Coordinate) Point { return Point{X: c.X, Y: c.Y} }

// PathRequest describes one search. Either Tilemap or Width, Height and
// Cells give the grid. Start and Goal are required for raw cells and
// override the tile map's markers when set.
type PathRequest struct {
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Cells     []int           `json:"cells"`
	Tilemap   json.RawMessage `json:"tilemap,omitempty"`
	Start     *Point          `json:"start,omitempty"`
	Goal      *Point          `json:"goal,omitempty"`
	Heuristic string          `json:"heuristic,omitempty"`
	Weight    *int            `json:"weight,omitempty"`
}

// PathResponse is the result of one search.
type PathResponse struct {
	RequestID string  `json:"requestId"`
	Found     bool    `json:"found"`
	Path      []Point `json:"path"`
	Steps     int     `json:"steps"`
	Expanded  int     `json:"expanded"`
	Heuristic string  `json:"heuristic"`
	Weight    int     `json:"weight"`
	ElapsedMs float64 `json:"elapsedMs"`
}

// MapInfo describes a named map.
type MapInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Start  Point  `json:"start"`
	Target Point  `json:"target"`
	Walls  int    `json:"walls"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	RequestID string `json:"requestId"`
	Error     string `json:"error"`
}
