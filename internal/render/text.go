// Package render presents search results as a coordinate listing, an
// ASCII drawing or a PNG image.
package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Map symbols used by DrawASCII.
const (
	SymbolWall     = 'X'
	SymbolStart    = 'S'
	SymbolTarget   = 'T'
	SymbolPath     = '*'
	SymbolWalkable = '.'
	SymbolUnknown  = '?'
)

// WriteCoords writes the path as a coordinate listing. The step count is
// the number of coordinates, start included.
func WriteCoords(w io.Writer, p core.Path) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "(X,Y) path coordinates \n")
	fmt.Fprintf(bw, "%d steps taken \n", p.Len())
	for _, c := range p {
		fmt.Fprintf(bw, "( %d , %d ) \n", c.X, c.Y)
	}
	return bw.Flush()
}

// Symbol classifies one cell for drawing. Walls take priority over the
// markers, markers over the path and the path over plain cells.
func Symbol(g *core.Grid, c, start, target core.Coordinate, onPath map[core.Coordinate]bool) byte {
	v, err := g.At(c)
	switch {
	case err != nil:
		return SymbolUnknown
	case v == core.CellWall:
		return SymbolWall
	case c == start:
		return SymbolStart
	case c == target:
		return SymbolTarget
	case onPath[c]:
		return SymbolPath
	case v == core.CellWalkable:
		return SymbolWalkable
	}
	return SymbolUnknown
}

// DrawASCII writes a legend followed by one line per grid row with
// space-delimited cell symbols.
func DrawASCII(w io.Writer, g *core.Grid, start, target core.Coordinate, p core.Path) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "Visual depiction of Path traveled \n")
	fmt.Fprint(bw, "LEGEND: \n")
	fmt.Fprintf(bw, "%c = Wall \n", SymbolWall)
	fmt.Fprintf(bw, "%c = Start Position \n", SymbolStart)
	fmt.Fprintf(bw, "%c = Target Position \n", SymbolTarget)
	fmt.Fprintf(bw, "%c = Battle Unit Traveled Path \n", SymbolPath)
	fmt.Fprintf(bw, "%c = Walkable Grid Point \n", SymbolWalkable)
	fmt.Fprintf(bw, "%c = Unknown Grid Point, check Tile Map file \n", SymbolUnknown)

	onPath := p.Set()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			bw.WriteByte(Symbol(g, core.Coordinate{X: x, Y: y}, start, target, onPath))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
