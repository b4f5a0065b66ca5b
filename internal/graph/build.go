package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/signalgrid/internal/config"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/specialistvlad/signalgrid/internal/indicator"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
)

type buildOptions struct {
	indicators *indicator.Registry
}

// BuildOption customizes Build.
type BuildOption func(*buildOptions)

// WithIndicators makes Build resolve indicator nodes against r instead of
// the built-in catalog.
func WithIndicators(r *indicator.Registry) BuildOption {
	return func(o *buildOptions) { o.indicators = r }
}

// Build constructs a validated Graph from a strategy model. Every problem
// found is reported in one error that wraps ErrInvalidGraph.
func Build(ctx context.Context, s *config.Strategy, opts ...BuildOption) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "nodes", len(s.Nodes), "edges", len(s.Edges))

	o := buildOptions{indicators: indicator.Builtin()}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Graph{
		nodes:    make(map[nodeid.ID]*Node, len(s.Nodes)),
		incoming: make(map[nodeid.PortRef]Edge, len(s.Edges)),
	}
	var errs []string

	// First pass: decode and register nodes.
	dec := &decoder{indicators: o.indicators, fanIn: logicFanIn(s.Edges)}
	for _, cfg := range s.Nodes {
		id, err := nodeid.Validate(cfg.ID)
		if err != nil {
			errs = append(errs, withOrigin(cfg.Origin, fmt.Sprintf("%s node: %v", cfg.Kind, err)))
			continue
		}
		if prev, dup := g.nodes[id]; dup {
			errs = append(errs, withOrigin(cfg.Origin, fmt.Sprintf("duplicate node id '%s' (first defined as %s)", id, prev)))
			continue
		}

		n, err := dec.decode(cfg, id)
		if err != nil {
			errs = append(errs, withOrigin(cfg.Origin, fmt.Sprintf("node '%s': %v", id, err)))
			continue
		}
		n.index = len(g.order)
		g.nodes[id] = n
		g.order = append(g.order, n)
	}
	logger.Debug("Build: Node decoding complete.", "node_count", len(g.order))

	// Second pass: link edges.
	for _, e := range s.Edges {
		if err := g.link(e); err != nil {
			errs = append(errs, withOrigin(e.Origin, err.Error()))
		}
	}
	logger.Debug("Build: Edge linking complete.", "edge_count", len(g.edges))

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w:\n- %s", ErrInvalidGraph, strings.Join(errs, "\n- "))
	}

	logger.Debug("Build: Graph construction successful.", "actions", len(g.Actions()))
	return g, nil
}

func (g *Graph) link(e *config.Edge) error {
	label := fmt.Sprintf("edge %s -> %s", e.From, e.To)

	from, ok := g.nodes[e.From.Node]
	if !ok {
		return fmt.Errorf("%s: source node '%s' not found", label, e.From.Node)
	}
	to, ok := g.nodes[e.To.Node]
	if !ok {
		return fmt.Errorf("%s: target node '%s' not found", label, e.To.Node)
	}

	out, ok := from.Output(e.From.Port)
	if !ok {
		return fmt.Errorf("%s: %s has no output '%s' (outputs: %s)", label, from, e.From.Port, strings.Join(portNames(from.Outputs), ", "))
	}
	in, ok := to.Input(e.To.Port)
	if !ok {
		return fmt.Errorf("%s: %s has no input '%s' (inputs: %s)", label, to, e.To.Port, strings.Join(portNames(to.Inputs), ", "))
	}
	if out.Type != in.Type {
		return fmt.Errorf("%s: type mismatch, output is %s but input expects %s", label, out.Type, in.Type)
	}
	if prev, taken := g.incoming[e.To]; taken {
		return fmt.Errorf("%s: input already connected from %s", label, prev.From)
	}

	edge := Edge{From: e.From, To: e.To}
	g.edges = append(g.edges, edge)
	g.incoming[e.To] = edge
	return nil
}

func withOrigin(origin, msg string) string {
	if origin == "" {
		return msg
	}
	return origin + ": " + msg
}
