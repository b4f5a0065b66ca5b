package graph

import (
	"fmt"

	"github.com/specialistvlad/signalgrid/internal/nodeid"
)

// Node is a single vertex of the strategy graph.
type Node struct {
	ID      nodeid.ID
	Spec    Spec
	Inputs  []Port
	Outputs []Port
	// Origin locates the node definition in its source file, if known.
	Origin string

	// index is the node's position in definition order.
	index int
}

// Kind returns the node's kind discriminant.
func (n *Node) Kind() Kind {
	return n.Spec.Kind()
}

// Index returns the node's position in definition order. Ordering helpers
// use it to break ties deterministically.
func (n *Node) Index() int {
	return n.index
}

// Input looks up a declared input port.
func (n *Node) Input(name string) (Port, bool) {
	return findPort(n.Inputs, name)
}

// Output looks up a declared output port.
func (n *Node) Output(name string) (Port, bool) {
	return findPort(n.Outputs, name)
}

// Accept dispatches to the Visitor method for the node's kind.
func (n *Node) Accept(v Visitor) error {
	return n.Spec.accept(n, v)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s node '%s'", n.Kind(), n.ID)
}

func findPort(ports []Port, name string) (Port, bool) {
	for _, p := range ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

func portNames(ports []Port) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return names
}
