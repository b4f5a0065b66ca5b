package dag

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/signalgrid/internal/graph"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
)

// CycleError reports a dependency cycle. Nodes lists the cycle in edge
// direction; the first node is repeated at the end.
type CycleError struct {
	Nodes []nodeid.ID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Nodes))
	for i, id := range e.Nodes {
		parts[i] = string(id)
	}
	return fmt.Sprintf("cycle detected involving nodes %s", strings.Join(parts, " -> "))
}

// Is makes errors.Is(err, graph.ErrInvalidGraph) hold for cycles.
func (e *CycleError) Is(target error) bool {
	return target == graph.ErrInvalidGraph
}

// findCycle locates one concrete cycle among nodes that Kahn's algorithm
// could not release. Every such node either lies on a cycle or is
// downstream of one, so a depth-first walk is guaranteed to close a loop.
func findCycle(nodes []*graph.Node, dependents map[nodeid.ID][]nodeid.ID) error {
	candidates := make(map[nodeid.ID]bool, len(nodes))
	for _, n := range nodes {
		candidates[n.ID] = true
	}

	// permanent: fully explored, not on a cycle.
	// temporary: on the current recursion stack.
	permanent := make(map[nodeid.ID]bool)
	temporary := make(map[nodeid.ID]bool)
	var stack []nodeid.ID

	var visit func(id nodeid.ID) *CycleError
	visit = func(id nodeid.ID) *CycleError {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			for i, s := range stack {
				if s == id {
					path := append(append([]nodeid.ID{}, stack[i:]...), id)
					return &CycleError{Nodes: path}
				}
			}
		}

		temporary[id] = true
		stack = append(stack, id)
		for _, next := range dependents[id] {
			if !candidates[next] {
				continue
			}
			if err := visit(next); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	for _, n := range nodes {
		if err := visit(n.ID); err != nil {
			return err
		}
	}

	// Unreachable for a genuine Kahn remainder; report the whole set.
	ids := make([]nodeid.ID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return &CycleError{Nodes: ids}
}
