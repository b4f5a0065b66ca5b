package evaluator

import (
	"fmt"

	"github.com/specialistvlad/signalgrid/internal/graph"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
)

// MissingInputError reports a required input port with no incoming edge.
type MissingInputError struct {
	Node nodeid.ID
	Kind graph.Kind
	Port string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input '%s' for %s node %s", e.Port, e.Kind, e.Node)
}

// Is makes errors.Is(err, graph.ErrInvalidGraph) hold for missing inputs.
func (e *MissingInputError) Is(target error) bool {
	return target == graph.ErrInvalidGraph
}
