package dag

import (
	"sort"

	"github.com/specialistvlad/signalgrid/internal/graph"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
)

// TopologicalSort orders nodes so that every node comes after all nodes
// feeding its inputs. Edges with an endpoint outside nodes are ignored.
// Independent nodes keep graph definition order.
func TopologicalSort(nodes []*graph.Node, edges []graph.Edge) ([]*graph.Node, error) {
	byID := make(map[nodeid.ID]*graph.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	indegree := make(map[nodeid.ID]int, len(nodes))
	dependents := make(map[nodeid.ID][]nodeid.ID, len(nodes))
	for _, e := range edges {
		if _, ok := byID[e.From.Node]; !ok {
			continue
		}
		if _, ok := byID[e.To.Node]; !ok {
			continue
		}
		indegree[e.To.Node]++
		dependents[e.From.Node] = append(dependents[e.From.Node], e.To.Node)
	}

	var ready []*graph.Node
	for _, n := range nodes {
		if indegree[n.ID] == 0 {
			ready = append(ready, n)
		}
	}
	sortByIndex(ready)

	order := make([]*graph.Node, 0, len(nodes))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)

		released := false
		for _, dep := range dependents[n.ID] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, byID[dep])
				released = true
			}
		}
		if released {
			sortByIndex(ready)
		}
	}

	if len(order) < len(nodes) {
		var remaining []*graph.Node
		for _, n := range nodes {
			if indegree[n.ID] > 0 {
				remaining = append(remaining, n)
			}
		}
		sortByIndex(remaining)
		return nil, findCycle(remaining, dependents)
	}
	return order, nil
}

// Sort returns the subgraph nodes in evaluation order.
func (s *Subgraph) Sort() ([]*graph.Node, error) {
	return TopologicalSort(s.Nodes, s.Edges)
}

func sortByIndex(nodes []*graph.Node) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Index() < nodes[j].Index() })
}
