package state

import (
	"sync"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// EventKind classifies a recorded search event.
type EventKind int

const (
	EventPush EventKind = iota
	EventExpand
	EventFound
)

// TraceEvent is one step of a recorded search.
type TraceEvent struct {
	Kind EventKind
	Pos  core.Coordinate
	F    int
}

// Frame is the search as it looked after a number of events.
type Frame struct {
	Open       map[core.Coordinate]int // Frontier cells and their f
	Closed     map[core.Coordinate]bool
	Current    core.Coordinate // Last expanded cell
	HasCurrent bool
	Path       core.Path // Set once the found event is reached
}

// TraceState records search events for replay. It is written by the
// search observer and read by the UI, possibly from different goroutines.
type TraceState struct {
	mu     sync.Mutex
	events []TraceEvent
	path   core.Path
	done   bool
}

// NewTraceState creates an empty trace.
func NewTraceState() *TraceState {
	return &TraceState{}
}

// Start clears the trace for a new search.
func (t *TraceState) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = t.events[:0]
	t.path = nil
	t.done = false
}

// Push records a frontier insertion.
func (t *TraceState) Push(c core.Coordinate, f int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, TraceEvent{Kind: EventPush, Pos: c, F: f})
}

// Expand records a cell being closed.
func (t *TraceState) Expand(c core.Coordinate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, TraceEvent{Kind: EventExpand, Pos: c})
}

// Found records the final path.
func (t *TraceState) Found(p core.Path) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.path = append(core.Path(nil), p...)
	t.events = append(t.events, TraceEvent{Kind: EventFound})
}

// Finish marks the search as complete.
func (t *TraceState) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = true
}

// Done reports whether the recorded search has finished.
func (t *TraceState) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Len returns the number of recorded events.
func (t *TraceState) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

// Events returns a copy of the recorded events.
func (t *TraceState) Events() []TraceEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TraceEvent, len(t.events))
	copy(out, t.events)
	return out
}

// Frame replays the first n events.
func (t *TraceState) Frame(n int) Frame {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n > len(t.events) {
		n = len(t.events)
	}
	f := Frame{
		Open:   make(map[core.Coordinate]int),
		Closed: make(map[core.Coordinate]bool),
	}
	for _, ev := range t.events[:n] {
		switch ev.Kind {
		case EventPush:
			f.Open[ev.Pos] = ev.F
		case EventExpand:
			delete(f.Open, ev.Pos)
			f.Closed[ev.Pos] = true
			f.Current = ev.Pos
			f.HasCurrent = true
		case EventFound:
			f.Path = t.path
		}
	}
	return f
}
