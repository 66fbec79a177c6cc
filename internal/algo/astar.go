package algo

import (
	"container/heap"
	"fmt"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// directions lists the four axis-aligned moves in expansion order:
// left, right, down, up.
var directions = [4]core.Coordinate{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// UpdateRule decides when a newly found route replaces a recorded node.
type UpdateRule int

const (
	// RuleF replaces a recorded node when the new f is strictly lower.
	RuleF UpdateRule = iota
	// RuleG replaces a recorded node when the new g is strictly lower.
	RuleG
)

// Observer receives search events, in order, as they happen.
type Observer interface {
	OnPush(c core.Coordinate, f int)
	OnExpand(c core.Coordinate)
	OnFound(path core.Path)
}

// Options configures a search.
type Options struct {
	Observer Observer
	Rule     UpdateRule
}

// Option modifies Options.
type Option func(*Options)

// WithObserver reports search events to o.
func WithObserver(o Observer) Option {
	return func(opts *Options) { opts.Observer = o }
}

// WithUpdateRule selects the node update comparison.
func WithUpdateRule(r UpdateRule) Option {
	return func(opts *Options) { opts.Rule = r }
}

// Stats summarizes the work done by one search.
type Stats struct {
	Expanded int // Cells closed
	Pushed   int // Frontier insertions
	Stale    int // Popped entries skipped as outdated
	Cost     int // g of the goal, or 0 when not found
}

// Result is the outcome of a search.
type Result struct {
	Path  core.Path
	Found bool
	Stats Stats
}

// node is the per-cell bookkeeping record.
type node struct {
	pos      core.Coordinate
	parent   core.Coordinate // Equal to pos for the start cell
	g        int             // Cost from start
	h        int             // Heuristic estimate to goal
	f        int             // g + h
	recorded bool
}

// frontierEntry is a (coordinate, f) pair in the open list.
type frontierEntry struct {
	pos   core.Coordinate
	f     int
	seq   int // Insertion order, breaks ties on f
	index int // heap index
}

// frontier implements heap.Interface as a min-heap on f.
type frontier []*frontierEntry

func (q frontier) Len() int { return len(q) }
func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}
func (q frontier) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *frontier) Push(x any) {
	e := x.(*frontierEntry)
	e.index = len(*q)
	*q = append(*q, e)
}
func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[0 : n-1]
	return e
}

// searchContext owns all mutable state of a single search.
type searchContext struct {
	grid      *core.Grid
	goal      core.Coordinate
	heuristic Heuristic
	weight    int
	opts      Options

	nodes  []node
	closed []bool
	open   frontier
	seq    int
	stats  Stats
}

// FindPath returns a 4-connected path from start to goal, or an empty path
// when the goal is unreachable. Invalid grids and endpoints are errors.
func FindPath(grid *core.Grid, start, goal core.Coordinate, h Heuristic, weight int, opts ...Option) (core.Path, error) {
	res, err := Search(grid, start, goal, h, weight, opts...)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search runs A* with unit step costs and returns the path with statistics.
// A nil heuristic behaves like Zero.
func Search(grid *core.Grid, start, goal core.Coordinate, h Heuristic, weight int, opts ...Option) (Result, error) {
	if grid == nil {
		return Result{}, fmt.Errorf("%w: nil grid", core.ErrConfiguration)
	}
	if err := checkEndpoint(grid, "start", start); err != nil {
		return Result{}, err
	}
	if err := checkEndpoint(grid, "goal", goal); err != nil {
		return Result{}, err
	}
	if h == nil {
		h = Zero
	}

	var options Options
	for _, o := range opts {
		o(&options)
	}

	if start == goal {
		path := core.Path{start}
		if options.Observer != nil {
			options.Observer.OnFound(path)
		}
		return Result{Path: path, Found: true}, nil
	}

	sc := &searchContext{
		grid:      grid,
		goal:      goal,
		heuristic: h,
		weight:    weight,
		opts:      options,
		nodes:     make([]node, grid.Len()),
		closed:    make([]bool, grid.Len()),
	}
	heap.Init(&sc.open)

	if !sc.run(start) {
		return Result{Path: core.Path{}, Stats: sc.stats}, nil
	}

	path := sc.buildPath()
	sc.stats.Cost = sc.nodes[grid.ToIndex(goal)].g
	if options.Observer != nil {
		options.Observer.OnFound(path)
	}
	return Result{Path: path, Found: true, Stats: sc.stats}, nil
}

func checkEndpoint(g *core.Grid, name string, c core.Coordinate) error {
	blocked, err := g.IsBlocked(c)
	if err != nil {
		return fmt.Errorf("%w: %s %v is outside the %dx%d grid", core.ErrInvalidEndpoint, name, c, g.Width(), g.Height())
	}
	if blocked {
		return fmt.Errorf("%w: %s %v is a wall", core.ErrInvalidEndpoint, name, c)
	}
	return nil
}

// run expands cells until the goal is popped or the frontier is empty.
func (sc *searchContext) run(start core.Coordinate) bool {
	h := sc.heuristic(start, sc.goal, sc.weight)
	sc.record(start, start, 0, h)

	for sc.open.Len() > 0 {
		entry := heap.Pop(&sc.open).(*frontierEntry)
		idx := sc.grid.ToIndex(entry.pos)

		// The node table is authoritative; outdated entries are dropped.
		if sc.closed[idx] || entry.f != sc.nodes[idx].f {
			sc.stats.Stale++
			continue
		}
		if entry.pos == sc.goal {
			return true
		}

		sc.closed[idx] = true
		sc.stats.Expanded++
		if sc.opts.Observer != nil {
			sc.opts.Observer.OnExpand(entry.pos)
		}

		current := sc.nodes[idx]
		for _, d := range directions {
			next := current.pos.Add(d)
			blocked, err := sc.grid.IsBlocked(next)
			if err != nil || blocked {
				continue
			}
			nextIdx := sc.grid.ToIndex(next)
			if sc.closed[nextIdx] {
				continue
			}

			g := current.g + 1
			h := sc.heuristic(next, sc.goal, sc.weight)
			if n := &sc.nodes[nextIdx]; !n.recorded || sc.improves(n, g, g+h) {
				sc.record(next, current.pos, g, h)
			}
		}
	}
	return false
}

func (sc *searchContext) improves(n *node, g, f int) bool {
	if sc.opts.Rule == RuleG {
		return g < n.g
	}
	return f < n.f
}

// record stores the node and pushes it onto the frontier.
func (sc *searchContext) record(pos, parent core.Coordinate, g, h int) {
	sc.nodes[sc.grid.ToIndex(pos)] = node{
		pos:      pos,
		parent:   parent,
		g:        g,
		h:        h,
		f:        g + h,
		recorded: true,
	}
	heap.Push(&sc.open, &frontierEntry{pos: pos, f: g + h, seq: sc.seq})
	sc.seq++
	sc.stats.Pushed++
	if sc.opts.Observer != nil {
		sc.opts.Observer.OnPush(pos, g+h)
	}
}

// buildPath walks parent links from the goal back to the self-parented
// start and returns them in start-to-goal order.
func (sc *searchContext) buildPath() core.Path {
	var path core.Path
	pos := sc.goal
	for {
		path = append(path, pos)
		n := sc.nodes[sc.grid.ToIndex(pos)]
		if n.parent == pos {
			break
		}
		pos = n.parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
