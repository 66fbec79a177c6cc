// Package tilemap reads and writes Tiled-style JSON tile maps.
//
// The grid dimensions come from the tileset's tilewidth and tileheight and
// the cells from a layer's flat data array. A cell value of 0 marks the
// start and 8 marks the target.
package tilemap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

var (
	// ErrOpen is returned when the map file cannot be opened.
	ErrOpen = errors.New("tilemap: cannot open file")
	// ErrParse is returned for malformed JSON.
	ErrParse = errors.New("tilemap: cannot parse JSON")
	// ErrTileSize is returned when no tileset gives a positive size.
	ErrTileSize = errors.New("tilemap: invalid tile size")
	// ErrNoLayerData is returned when a layer carries no data array.
	ErrNoLayerData = errors.New("tilemap: layer has no data")
	// ErrMissingStart is returned when no cell holds the start marker.
	ErrMissingStart = errors.New("tilemap: start position not found")
	// ErrMissingTarget is returned when no cell holds the target marker.
	ErrMissingTarget = errors.New("tilemap: target position not found")
)

// Map is a decoded tile map.
type Map struct {
	Grid       *core.Grid
	Start      core.Coordinate
	Target     core.Coordinate
	TileWidth  int
	TileHeight int
}

type tileset struct {
	Name       string `json:"name,omitempty"`
	TileWidth  *int   `json:"tilewidth"`
	TileHeight *int   `json:"tileheight"`
}

type layer struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Data *[]int `json:"data"`
}

type document struct {
	Tilesets []tileset `json:"tilesets"`
	Layers   []layer   `json:"layers"`
}

// Load opens and decodes the map file at path.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode reads a tile map from r. When several tilesets or layers are
// present the last one wins.
func Decode(r io.Reader) (*Map, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	width, height := -1, -1
	for _, ts := range doc.Tilesets {
		if ts.TileWidth != nil {
			width = *ts.TileWidth
		}
		if ts.TileHeight != nil {
			height = *ts.TileHeight
		}
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %d x %d", ErrTileSize, width, height)
	}

	if len(doc.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrNoLayerData)
	}
	var data []int
	for i, l := range doc.Layers {
		if l.Data == nil {
			return nil, fmt.Errorf("%w: layer %d (%q)", ErrNoLayerData, i, l.Name)
		}
		data = *l.Data
	}

	cells := make([]core.Cell, len(data))
	for i, v := range data {
		cells[i] = core.Cell(v)
	}
	grid, err := core.NewGrid(width, height, cells)
	if err != nil {
		return nil, err
	}

	start, ok := grid.Find(core.CellStart)
	if !ok {
		return nil, ErrMissingStart
	}
	target, ok := grid.Find(core.CellTarget)
	if !ok {
		return nil, ErrMissingTarget
	}

	return &Map{
		Grid:       grid,
		Start:      start,
		Target:     target,
		TileWidth:  width,
		TileHeight: height,
	}, nil
}

// Encode writes m in the format Decode reads. The start and target
// markers are taken from the grid cells as they are.
func Encode(w io.Writer, m *Map) error {
	if m == nil || m.Grid == nil {
		return fmt.Errorf("%w: nil map", core.ErrConfiguration)
	}
	width, height := m.Grid.Width(), m.Grid.Height()
	cells := m.Grid.Cells()
	data := make([]int, len(cells))
	for i, c := range cells {
		data[i] = int(c)
	}

	doc := document{
		Tilesets: []tileset{{Name: "grid", TileWidth: &width, TileHeight: &height}},
		Layers:   []layer{{Name: "cells", Type: "tilelayer", Data: &data}},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Save writes m to the file at path.
func Save(path string, m *Map) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
