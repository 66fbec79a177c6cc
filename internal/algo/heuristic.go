package algo

import (
	"fmt"
	"math"
	"strings"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Heuristic estimates the cost from one cell to another, scaled by weight.
// Results are in the same integral unit as the step cost and never negative.
type Heuristic func(from, to core.Coordinate, weight int) int

// Manhattan returns weight * (|dx| + |dy|).
func Manhattan(from, to core.Coordinate, weight int) int {
	d := core.Delta(from, to)
	return nonNegative(weight * (d.X + d.Y))
}

// Euclidean returns weight * sqrt(dx² + dy²), truncated.
func Euclidean(from, to core.Coordinate, weight int) int {
	d := core.Delta(from, to)
	return nonNegative(int(float64(weight) * math.Sqrt(float64(d.X*d.X+d.Y*d.Y))))
}

// EuclideanSquared returns weight * (dx² + dy²). Not admissible for unit
// step costs.
func EuclideanSquared(from, to core.Coordinate, weight int) int {
	d := core.Delta(from, to)
	return nonNegative(weight * (d.X*d.X + d.Y*d.Y))
}

// Zero always returns 0, turning the search into Dijkstra's algorithm.
func Zero(from, to core.Coordinate, weight int) int {
	return 0
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// HeuristicKind selects one of the built-in heuristics.
type HeuristicKind int

const (
	KindManhattan HeuristicKind = iota
	KindEuclidean
	KindEuclideanSquared
	KindZero
)

var kindNames = [...]string{"manhattan", "euclidean", "euclidean-squared", "dijkstra"}

func (k HeuristicKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("HeuristicKind(%d)", int(k))
	}
	return kindNames[k]
}

// Func returns the heuristic function for k. Unknown kinds map to Zero.
func (k HeuristicKind) Func() Heuristic {
	switch k {
	case KindManhattan:
		return Manhattan
	case KindEuclidean:
		return Euclidean
	case KindEuclideanSquared:
		return EuclideanSquared
	default:
		return Zero
	}
}

// Next returns the following kind, wrapping around.
func (k HeuristicKind) Next() HeuristicKind {
	return (k + 1) % HeuristicKind(len(kindNames))
}

// Kinds lists every built-in heuristic.
func Kinds() []HeuristicKind {
	return []HeuristicKind{KindManhattan, KindEuclidean, KindEuclideanSquared, KindZero}
}

// ParseHeuristic resolves a heuristic name, case-insensitively.
func ParseHeuristic(name string) (HeuristicKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "manhattan":
		return KindManhattan, nil
	case "euclidean":
		return KindEuclidean, nil
	case "euclidean-squared", "euclidean-nosqr", "euclideannosqr":
		return KindEuclideanSquared, nil
	case "dijkstra", "zero":
		return KindZero, nil
	}
	return 0, fmt.Errorf("unknown heuristic %q (want one of %s)", name, strings.Join(kindNames[:], ", "))
}
