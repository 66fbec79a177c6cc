// Package observer connects search events to the viewer's trace.
package observer

import (
	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

// TraceObserver adapts a TraceState to algo.Observer.
type TraceObserver struct {
	trace *state.TraceState
}

var _ algo.Observer = (*TraceObserver)(nil)

// NewTraceObserver creates an observer recording into ts.
func NewTraceObserver(ts *state.TraceState) *TraceObserver {
	return &TraceObserver{trace: ts}
}

// OnPush records a frontier insertion.
func (o *TraceObserver) OnPush(c core.Coordinate, f int) {
	o.trace.Push(c, f)
}

// OnExpand records a closed cell.
func (o *TraceObserver) OnExpand(c core.Coordinate) {
	o.trace.Expand(c)
}

// OnFound records the final path.
func (o *TraceObserver) OnFound(path core.Path) {
	o.trace.Found(path)
}

// Rerun searches the current map with the state's heuristic and weight,
// recording the trace, and stores the result.
func Rerun(st *state.State) {
	st.Trace.Start()
	m := st.Map
	res, err := algo.Search(m.Grid, m.Start, m.Target, st.Heuristic.Func(), st.Weight,
		algo.WithObserver(NewTraceObserver(st.Trace)))
	st.SetResult(res, err)
}
