// Package graph is the validated, typed model of a strategy graph.
//
// # Model
//
// A Graph is an arena of nodes indexed by nodeid.ID plus an explicit edge
// list. Each edge connects a named output port of one node to a named input
// port of another. Nodes do not hold pointers to each other; the graph keeps
// an index of edges by target port so that "what feeds this input?" is a
// single map lookup.
//
// Every node carries a Spec, which is a closed sum type over six kinds:
//
//	price       -> value (number)
//	indicator   source... -> value | upperBand/middleBand/lowerBand | ...
//	math        left, right -> value (number)
//	comparison  left, right -> true (bool)
//	logic       in0..inN -> true (bool)
//	action      trigger -> (sink)
//
// Code that needs to handle every kind implements Visitor. Adding a kind
// adds a method to Visitor, so every implementation stops compiling until it
// handles the new kind.
//
// # Validation
//
// Build validates eagerly. A graph that Build returns is guaranteed to have
// unique node ids, well-formed specs, edges that reference existing nodes
// and ports of matching types, and at most one edge per input port. The
// graph is not required to be acyclic as a whole; cycle checks happen per
// action in the dag package.
//
// All validation failures wrap ErrInvalidGraph.
package graph
