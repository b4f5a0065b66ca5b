package signals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/signalgrid/internal/bars"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/specialistvlad/signalgrid/internal/dag"
	"github.com/specialistvlad/signalgrid/internal/evaluator"
	"github.com/specialistvlad/signalgrid/internal/graph"
)

// Direction values reported in Row.EntryDirection.
const (
	Long  = 1
	Short = -1
)

// Row is one bar augmented with the derived signal columns.
type Row struct {
	Bar            bars.Bar
	Time           time.Time
	EntrySignal    bool
	EntryDirection int
	ExitSignal     bool
	// EntrySize is the size of the first entry action, in definition order,
	// that fired in the winning direction. Zero when no entry fired.
	EntrySize float64
}

// Result is the signal table, one row per input bar in the same order.
type Result struct {
	Rows []Row
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.Rows)
}

// Counts returns how many rows carry an entry and an exit signal.
func (r *Result) Counts() (entries, exits int) {
	for _, row := range r.Rows {
		if row.EntrySignal {
			entries++
		}
		if row.ExitSignal {
			exits++
		}
	}
	return entries, exits
}

// Option configures Compile.
type Option func(*options)

type options struct {
	hook evaluator.Hook
}

// WithHook installs an evaluation hook on the underlying evaluator.
func WithHook(h evaluator.Hook) Option {
	return func(o *options) { o.hook = h }
}

// IsCompileError reports whether err is a graph problem (invalid structure,
// missing input, cycle) rather than an infrastructure failure.
func IsCompileError(err error) bool {
	return errors.Is(err, graph.ErrInvalidGraph)
}

// trigger is the evaluated trigger series of one action.
type trigger struct {
	action *graph.Node
	spec   *graph.ActionSpec
	fired  []bool
}

// Compile evaluates every action of g against table and aggregates the
// triggers into signal rows. It fails as a whole on the first error.
func Compile(ctx context.Context, g *graph.Graph, table *bars.Table, opts ...Option) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	evalOpts := []evaluator.Option{evaluator.WithLogger(logger)}
	if o.hook != nil {
		evalOpts = append(evalOpts, evaluator.WithHook(o.hook))
	}
	run := evaluator.NewContext(g, table, evalOpts...)

	var entries, exits []trigger
	for _, action := range g.Actions() {
		spec, ok := action.Spec.(*graph.ActionSpec)
		if !ok {
			return nil, fmt.Errorf("action '%s': unexpected spec %T", action.ID, action.Spec)
		}

		fired, err := evaluateAction(run, g, action)
		if err != nil {
			return nil, fmt.Errorf("action '%s': %w", action.ID, err)
		}
		logger.Debug("Compile: action evaluated.", "action_id", action.ID, "action_type", spec.ActionType, "side", spec.Side)

		t := trigger{action: action, spec: spec, fired: fired}
		switch {
		case spec.IsEntry():
			entries = append(entries, t)
		case spec.IsExit():
			exits = append(exits, t)
		}
	}

	res := aggregate(table, entries, exits)
	nEntries, nExits := res.Counts()
	logger.Debug("Compile: signals aggregated.", "rows", res.Len(), "entries", nEntries, "exits", nExits)
	return res, nil
}

// evaluateAction compiles the action's dependency subgraph in topological
// order and returns its trigger series.
func evaluateAction(run *evaluator.Context, g *graph.Graph, action *graph.Node) ([]bool, error) {
	sub, err := dag.ExtractSubgraph(g, action.ID)
	if err != nil {
		return nil, err
	}
	order, err := sub.Sort()
	if err != nil {
		return nil, err
	}
	if err := run.Evaluate(order); err != nil {
		return nil, err
	}
	series, err := run.ResolveInput(action, dag.TriggerPort)
	if err != nil {
		return nil, err
	}
	return series.Bools(), nil
}

func aggregate(table *bars.Table, entries, exits []trigger) *Result {
	rows := make([]Row, table.Len())
	for i := range rows {
		row := Row{
			Bar:            table.Bar(i),
			Time:           table.Time(i),
			EntryDirection: Long,
		}

		var longSize, shortSize float64
		var long, short bool
		for _, e := range entries {
			if !e.fired[i] {
				continue
			}
			if e.spec.IsShort() {
				if !short {
					short, shortSize = true, e.spec.Size
				}
				continue
			}
			if !long {
				long, longSize = true, e.spec.Size
			}
		}

		switch {
		case short:
			row.EntrySignal, row.EntryDirection, row.EntrySize = true, Short, shortSize
		case long:
			row.EntrySignal, row.EntrySize = true, longSize
		}

		for _, x := range exits {
			if x.fired[i] {
				row.ExitSignal = true
				break
			}
		}
		rows[i] = row
	}
	return &Result{Rows: rows}
}
