package dag

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/signalgrid/internal/graph"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
)

// TriggerPort is the input port every action node reads its firing
// condition from.
const TriggerPort = "trigger"

// Subgraph is the part of a graph one action depends on, including the
// action itself.
type Subgraph struct {
	Action *graph.Node
	Nodes  []*graph.Node
	Edges  []graph.Edge
}

// ExtractSubgraph returns the nodes and edges reachable by walking backward
// from the action's trigger input. Nodes and edges keep graph definition
// order.
func ExtractSubgraph(g *graph.Graph, actionID nodeid.ID) (*Subgraph, error) {
	action, ok := g.Node(actionID)
	if !ok {
		return nil, fmt.Errorf("%w: action node '%s' not found", graph.ErrInvalidGraph, actionID)
	}
	if action.Kind() != graph.KindAction {
		return nil, fmt.Errorf("%w: node '%s' is a %s node, not an action", graph.ErrInvalidGraph, actionID, action.Kind())
	}

	included := map[nodeid.ID]*graph.Node{action.ID: action}
	var stack []*graph.Node
	if e, ok := g.Incoming(nodeid.NewPortRef(action.ID, TriggerPort)); ok {
		src, _ := g.Node(e.From.Node)
		included[src.ID] = src
		stack = append(stack, src)
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, e := range g.IncomingEdges(n) {
			if _, seen := included[e.From.Node]; seen {
				continue
			}
			src, _ := g.Node(e.From.Node)
			included[src.ID] = src
			stack = append(stack, src)
		}
	}

	sub := &Subgraph{Action: action, Nodes: make([]*graph.Node, 0, len(included))}
	for _, n := range included {
		sub.Nodes = append(sub.Nodes, n)
	}
	sort.Slice(sub.Nodes, func(i, j int) bool { return sub.Nodes[i].Index() < sub.Nodes[j].Index() })

	for _, e := range g.Edges() {
		_, fromIn := included[e.From.Node]
		_, toIn := included[e.To.Node]
		if !fromIn || !toIn {
			continue
		}
		// Only the trigger edge may enter the action.
		if e.To.Node == action.ID && e.To.Port != TriggerPort {
			continue
		}
		sub.Edges = append(sub.Edges, e)
	}

	return sub, nil
}
