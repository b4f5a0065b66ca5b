package config

import (
	"github.com/specialistvlad/signalgrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Strategy is the unified representation of one strategy graph.
type Strategy struct {
	Name  string
	Nodes []*Node
	Edges []*Edge
}

// Node is the format-agnostic representation of a `node` block.
type Node struct {
	Kind string
	ID   string
	// Attributes are the node's kind-specific settings, e.g. `period` or
	// `operator`. Interpretation happens in the graph builder.
	Attributes map[string]cty.Value
	// Origin locates the definition in its source file for error messages.
	Origin string
}

// Edge is the format-agnostic representation of an `edge` block.
type Edge struct {
	From   nodeid.PortRef
	To     nodeid.PortRef
	Origin string
}

// Merge appends the nodes and edges of other to s. The first non-empty name
// wins.
func (s *Strategy) Merge(other *Strategy) {
	if s.Name == "" {
		s.Name = other.Name
	}
	s.Nodes = append(s.Nodes, other.Nodes...)
	s.Edges = append(s.Edges, other.Edges...)
}
