package graph

import (
	"github.com/specialistvlad/signalgrid/internal/nodeid"
)

// Edge connects an output port to an input port.
type Edge struct {
	From nodeid.PortRef
	To   nodeid.PortRef
}

// Graph is an immutable, validated strategy graph. Build is the only way to
// obtain one.
type Graph struct {
	nodes    map[nodeid.ID]*Node
	order    []*Node
	edges    []Edge
	incoming map[nodeid.PortRef]Edge
}

// Node returns the node with the given id.
func (g *Graph) Node(id nodeid.ID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in definition order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Edges returns all edges in definition order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Incoming returns the edge feeding the given input port, if any.
func (g *Graph) Incoming(to nodeid.PortRef) (Edge, bool) {
	e, ok := g.incoming[to]
	return e, ok
}

// IncomingEdges returns the edges feeding a node, ordered by the node's
// declared input ports.
func (g *Graph) IncomingEdges(n *Node) []Edge {
	var out []Edge
	for _, p := range n.Inputs {
		if e, ok := g.incoming[nodeid.NewPortRef(n.ID, p.Name)]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Actions returns all action nodes in definition order.
func (g *Graph) Actions() []*Node {
	var out []*Node
	for _, n := range g.order {
		if n.Kind() == KindAction {
			out = append(out, n)
		}
	}
	return out
}
