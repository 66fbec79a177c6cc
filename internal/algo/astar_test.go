package algo

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// createGrid builds a grid from rows, failing the test on error.
func createGrid(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.GridFromRows(rows...)
	if err != nil {
		t.Fatalf("GridFromRows: %v", err)
	}
	return g
}

// randomGrid creates a w x h grid with roughly density walls.
func randomGrid(rng *rand.Rand, w, h int, density float64) *core.Grid {
	cells := make([]core.Cell, w*h)
	for i := range cells {
		cells[i] = core.CellWalkable
		if rng.Float64() < density {
			cells[i] = core.CellWall
		}
	}
	g, err := core.NewGrid(w, h, cells)
	if err != nil {
		panic(err)
	}
	return g
}

func randomOpenCell(rng *rand.Rand, g *core.Grid) core.Coordinate {
	for {
		c := core.Coordinate{X: rng.Intn(g.Width()), Y: rng.Intn(g.Height())}
		if blocked, _ := g.IsBlocked(c); !blocked {
			return c
		}
	}
}

// bfsDistance is the unweighted shortest-path oracle. Returns -1 when
// goal is unreachable.
func bfsDistance(g *core.Grid, start, goal core.Coordinate) int {
	dist := make([]int, g.Len())
	for i := range dist {
		dist[i] = -1
	}
	dist[g.ToIndex(start)] = 0
	queue := []core.Coordinate{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == goal {
			return dist[g.ToIndex(c)]
		}
		for _, d := range directions {
			n := c.Add(d)
			blocked, err := g.IsBlocked(n)
			if err != nil || blocked || dist[g.ToIndex(n)] >= 0 {
				continue
			}
			dist[g.ToIndex(n)] = dist[g.ToIndex(c)] + 1
			queue = append(queue, n)
		}
	}
	return -1
}

// checkPath verifies the path is a connected, wall-free, repeat-free walk
// from start to goal.
func checkPath(t *testing.T, g *core.Grid, path core.Path, start, goal core.Coordinate) {
	t.Helper()
	if path.IsEmpty() {
		t.Fatal("path is empty")
	}
	if s, _ := path.Start(); s != start {
		t.Errorf("path starts at %v, want %v", s, start)
	}
	if e, _ := path.Goal(); e != goal {
		t.Errorf("path ends at %v, want %v", e, goal)
	}
	seen := make(map[core.Coordinate]bool)
	for i, c := range path {
		if blocked, err := g.IsBlocked(c); err != nil || blocked {
			t.Errorf("path[%d] = %v is blocked or outside (err=%v)", i, c, err)
		}
		if seen[c] {
			t.Errorf("path[%d] = %v repeats", i, c)
		}
		seen[c] = true
		if i > 0 {
			d := core.Delta(path[i-1], c)
			if d.X+d.Y != 1 {
				t.Errorf("path[%d-1] = %v and path[%d] = %v are not adjacent", i, path[i-1], i, c)
			}
		}
	}
}

func TestOpenGridStaircase(t *testing.T) {
	g := createGrid(t,
		"...",
		"...",
		"...",
	)
	start := core.Coordinate{X: 0, Y: 0}
	goal := core.Coordinate{X: 2, Y: 2}

	path, err := FindPath(g, start, goal, Manhattan, 1)
	if err != nil {
		t.Fatal(err)
	}
	if path.Len() != 5 {
		t.Fatalf("path length = %d, want 5: %v", path.Len(), path)
	}
	checkPath(t, g, path, start, goal)

	// Every step moves right or down.
	for i := 1; i < len(path); i++ {
		if path[i].X < path[i-1].X || path[i].Y < path[i-1].Y {
			t.Errorf("step %v -> %v is not monotone", path[i-1], path[i])
		}
	}
}

func TestRoutesThroughSingleOpening(t *testing.T) {
	g := createGrid(t,
		"...",
		"#.#",
		"...",
	)
	start := core.Coordinate{X: 0, Y: 0}
	goal := core.Coordinate{X: 2, Y: 2}

	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			path, err := FindPath(g, start, goal, k.Func(), 1)
			if err != nil {
				t.Fatal(err)
			}
			checkPath(t, g, path, start, goal)
			if !path.Contains(core.Coordinate{X: 1, Y: 1}) {
				t.Errorf("path %v does not pass through (1,1)", path)
			}
		})
	}
}

func TestInvalidEndpoints(t *testing.T) {
	g := createGrid(t,
		"#..",
		"...",
		"..#",
	)

	tests := []struct {
		name        string
		start, goal core.Coordinate
	}{
		{"blocked start", core.Coordinate{X: 0, Y: 0}, core.Coordinate{X: 1, Y: 1}},
		{"blocked goal", core.Coordinate{X: 1, Y: 1}, core.Coordinate{X: 2, Y: 2}},
		{"start outside", core.Coordinate{X: -1, Y: 0}, core.Coordinate{X: 1, Y: 1}},
		{"goal outside", core.Coordinate{X: 1, Y: 1}, core.Coordinate{X: 1, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingObserver{}
			path, err := FindPath(g, tt.start, tt.goal, Manhattan, 1, WithObserver(rec))
			if !errors.Is(err, core.ErrInvalidEndpoint) {
				t.Errorf("error = %v, want ErrInvalidEndpoint", err)
			}
			if path != nil {
				t.Errorf("path = %v, want nil", path)
			}
			if len(rec.pushed) != 0 || len(rec.expanded) != 0 {
				t.Error("search ran despite invalid endpoint")
			}
		})
	}
}

func TestNilGrid(t *testing.T) {
	_, err := FindPath(nil, core.Coordinate{}, core.Coordinate{}, Manhattan, 1)
	if !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestStartEqualsGoal(t *testing.T) {
	g := createGrid(t, "...")
	c := core.Coordinate{X: 1, Y: 0}

	path, err := FindPath(g, c, c, Euclidean, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 1 || path[0] != c {
		t.Errorf("path = %v, want [%v]", path, c)
	}
}

func TestUnreachableGoal(t *testing.T) {
	g := createGrid(t,
		".....",
		"..#..",
		".#.#.",
		"..#..",
	)
	start := core.Coordinate{X: 0, Y: 0}
	goal := core.Coordinate{X: 2, Y: 2}

	res, err := Search(g, start, goal, Manhattan, 1)
	if err != nil {
		t.Fatalf("unreachable goal returned error: %v", err)
	}
	if res.Found || !res.Path.IsEmpty() {
		t.Errorf("Found=%v path=%v, want not found and empty", res.Found, res.Path)
	}
	if res.Stats.Expanded == 0 {
		t.Error("expected the reachable region to be expanded")
	}
}

func TestMatchesBFSOnRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	admissible := []HeuristicKind{KindZero, KindManhattan, KindEuclidean}

	for trial := 0; trial < 200; trial++ {
		g := randomGrid(rng, 4+rng.Intn(12), 4+rng.Intn(12), 0.3)
		start := randomOpenCell(rng, g)
		goal := randomOpenCell(rng, g)
		want := bfsDistance(g, start, goal)

		for _, k := range admissible {
			path, err := FindPath(g, start, goal, k.Func(), 1)
			if err != nil {
				t.Fatalf("trial %d %v: %v", trial, k, err)
			}
			if want < 0 {
				if !path.IsEmpty() {
					t.Errorf("trial %d %v: found %v but BFS says unreachable", trial, k, path)
				}
				continue
			}
			checkPath(t, g, path, start, goal)
			if path.Steps() != want {
				t.Errorf("trial %d %v: %d steps, BFS distance %d", trial, k, path.Steps(), want)
			}
		}
	}
}

func TestWeightKeepsPathExistence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		g := randomGrid(rng, 10, 10, 0.35)
		start := randomOpenCell(rng, g)
		goal := randomOpenCell(rng, g)
		reachable := bfsDistance(g, start, goal) >= 0

		for _, k := range []HeuristicKind{KindManhattan, KindEuclidean, KindEuclideanSquared} {
			for _, w := range []int{1, 2, 5, 10} {
				path, err := FindPath(g, start, goal, k.Func(), w)
				if err != nil {
					t.Fatal(err)
				}
				if path.IsEmpty() == reachable {
					t.Errorf("trial %d %v w=%d: found=%v, reachable=%v", trial, k, w, !path.IsEmpty(), reachable)
					continue
				}
				if reachable {
					checkPath(t, g, path, start, goal)
				}
			}
		}
	}
}

func TestUpdateRulesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 50; trial++ {
		g := randomGrid(rng, 12, 9, 0.25)
		start := randomOpenCell(rng, g)
		goal := randomOpenCell(rng, g)

		f, err := Search(g, start, goal, Manhattan, 1, WithUpdateRule(RuleF))
		if err != nil {
			t.Fatal(err)
		}
		gr, err := Search(g, start, goal, Manhattan, 1, WithUpdateRule(RuleG))
		if err != nil {
			t.Fatal(err)
		}
		if f.Found != gr.Found || f.Stats.Cost != gr.Stats.Cost {
			t.Errorf("trial %d: RuleF found=%v cost=%d, RuleG found=%v cost=%d",
				trial, f.Found, f.Stats.Cost, gr.Found, gr.Stats.Cost)
		}
	}
}

func TestNilHeuristicIsDijkstra(t *testing.T) {
	g := createGrid(t,
		"....",
		".##.",
		"....",
	)
	start := core.Coordinate{X: 0, Y: 1}
	goal := core.Coordinate{X: 3, Y: 1}

	res, err := Search(g, start, goal, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || res.Stats.Cost != 5 {
		t.Errorf("Found=%v Cost=%d, want true 5", res.Found, res.Stats.Cost)
	}
	if res.Stats.Cost != res.Path.Steps() {
		t.Errorf("Cost %d != path steps %d", res.Stats.Cost, res.Path.Steps())
	}
}

type recordingObserver struct {
	pushed   []core.Coordinate
	expanded []core.Coordinate
	found    []core.Path
}

func (r *recordingObserver) OnPush(c core.Coordinate, f int) { r.pushed = append(r.pushed, c) }
func (r *recordingObserver) OnExpand(c core.Coordinate)      { r.expanded = append(r.expanded, c) }
func (r *recordingObserver) OnFound(p core.Path)             { r.found = append(r.found, p) }

func TestObserverEvents(t *testing.T) {
	g := createGrid(t,
		"....",
		"....",
	)
	start := core.Coordinate{X: 0, Y: 0}
	goal := core.Coordinate{X: 3, Y: 1}
	rec := &recordingObserver{}

	res, err := Search(g, start, goal, Manhattan, 1, WithObserver(rec))
	if err != nil {
		t.Fatal(err)
	}

	if len(rec.pushed) == 0 || rec.pushed[0] != start {
		t.Errorf("first push = %v, want start %v", rec.pushed, start)
	}
	if len(rec.expanded) == 0 || rec.expanded[0] != start {
		t.Errorf("first expansion = %v, want start %v", rec.expanded, start)
	}
	if len(rec.expanded) != res.Stats.Expanded {
		t.Errorf("observer saw %d expansions, stats say %d", len(rec.expanded), res.Stats.Expanded)
	}
	if len(rec.pushed) != res.Stats.Pushed {
		t.Errorf("observer saw %d pushes, stats say %d", len(rec.pushed), res.Stats.Pushed)
	}
	if len(rec.found) != 1 || len(rec.found[0]) != len(res.Path) {
		t.Errorf("OnFound calls = %v, want one call with %v", rec.found, res.Path)
	}
	for _, c := range rec.expanded {
		if c == goal {
			t.Error("goal was expanded; search must stop when it is popped")
		}
	}
}

func TestConcurrentSearchesShareGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := randomGrid(rng, 30, 30, 0.2)

	type job struct {
		start, goal core.Coordinate
		want        int
	}
	jobs := make([]job, 32)
	for i := range jobs {
		s, e := randomOpenCell(rng, g), randomOpenCell(rng, g)
		jobs[i] = job{start: s, goal: e, want: bfsDistance(g, s, e)}
	}

	var wg sync.WaitGroup
	errs := make(chan string, len(jobs))
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			path, err := FindPath(g, j.start, j.goal, Manhattan, 1)
			if err != nil {
				errs <- err.Error()
				return
			}
			got := -1
			if !path.IsEmpty() {
				got = path.Steps()
			}
			if got != j.want {
				errs <- "concurrent search returned a wrong distance"
			}
		}(j)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
