package evaluator

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/signalgrid/internal/bars"
	"github.com/specialistvlad/signalgrid/internal/dag"
	"github.com/specialistvlad/signalgrid/internal/graph"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Hook is called once after each node is evaluated, before its result is
// cached.
type Hook func(n *graph.Node, out Outputs)

// Option configures a Context.
type Option func(*Context)

// WithHook installs an evaluation hook.
func WithHook(h Hook) Option {
	return func(c *Context) { c.hook = h }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// Context holds the state of one compilation run. It is not safe for
// concurrent use.
type Context struct {
	graph  *graph.Graph
	table  *bars.Table
	cache  map[nodeid.ID]Outputs
	active []nodeid.ID
	hook   Hook
	logger *slog.Logger
}

// NewContext creates a fresh run context with an empty cache.
func NewContext(g *graph.Graph, table *bars.Table, opts ...Option) *Context {
	c := &Context{
		graph:  g,
		table:  table,
		cache:  make(map[nodeid.ID]Outputs),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rows returns the number of rows every series in this run has.
func (c *Context) Rows() int {
	return c.table.Len()
}

// CompileNode returns the output series of n, computing it and its upstream
// nodes on first request and serving the cached result afterwards.
func (c *Context) CompileNode(n *graph.Node) (Outputs, error) {
	if out, ok := c.cache[n.ID]; ok {
		return out, nil
	}

	for i, id := range c.active {
		if id == n.ID {
			path := append(append([]nodeid.ID{}, c.active[i:]...), n.ID)
			return nil, &dag.CycleError{Nodes: path}
		}
	}
	c.active = append(c.active, n.ID)
	defer func() { c.active = c.active[:len(c.active)-1] }()

	comp := &compiler{ctx: c}
	if err := n.Accept(comp); err != nil {
		return nil, err
	}

	if c.hook != nil {
		c.hook(n, comp.out)
	}
	c.cache[n.ID] = comp.out
	c.logger.Debug("Node evaluated.", "node_id", n.ID, "kind", n.Kind(), "outputs", len(comp.out), "rows", c.Rows())
	return comp.out, nil
}

// Evaluate compiles nodes in the given order, typically a topological order
// from the dag package.
func (c *Context) Evaluate(order []*graph.Node) error {
	for _, n := range order {
		if _, err := c.CompileNode(n); err != nil {
			return err
		}
	}
	return nil
}

// ResolveInput returns the series feeding an input port: the upstream
// output if connected, otherwise the port default broadcast to every row.
func (c *Context) ResolveInput(n *graph.Node, port string) (Series, error) {
	p, ok := n.Input(port)
	if !ok {
		return Series{}, fmt.Errorf("%s has no input '%s'", n, port)
	}

	e, connected := c.graph.Incoming(nodeid.NewPortRef(n.ID, port))
	if !connected {
		if p.Required() {
			return Series{}, &MissingInputError{Node: n.ID, Kind: n.Kind(), Port: port}
		}
		return c.broadcast(p)
	}

	src, ok := c.graph.Node(e.From.Node)
	if !ok {
		return Series{}, fmt.Errorf("edge %s -> %s: source node not found", e.From, e.To)
	}
	out, err := c.CompileNode(src)
	if err != nil {
		return Series{}, err
	}
	s, ok := out[e.From.Port]
	if !ok {
		return Series{}, fmt.Errorf("%s produced no output '%s'", src, e.From.Port)
	}
	if s.Type() != p.Type {
		return Series{}, fmt.Errorf("%s input '%s' expects %s, got %s", n, port, p.Type, s.Type())
	}
	return s, nil
}

func (c *Context) broadcast(p graph.Port) (Series, error) {
	rows := c.Rows()
	switch p.Type {
	case graph.Boolean:
		var v bool
		if err := gocty.FromCtyValue(*p.Default, &v); err != nil {
			return Series{}, fmt.Errorf("default for input '%s': %w", p.Name, err)
		}
		out := make([]bool, rows)
		for i := range out {
			out[i] = v
		}
		return BooleanSeries(out), nil
	default:
		var v float64
		if err := gocty.FromCtyValue(*p.Default, &v); err != nil {
			return Series{}, fmt.Errorf("default for input '%s': %w", p.Name, err)
		}
		out := make([]float64, rows)
		for i := range out {
			out[i] = v
		}
		return NumericSeries(out), nil
	}
}
