// Package dag resolves what one action node depends on and in which order
// those dependencies must be evaluated.
//
// ExtractSubgraph walks backward from an action's trigger input and keeps
// only the nodes and edges on a path into it. TopologicalSort orders a
// subgraph producer-before-consumer using Kahn's algorithm; ready nodes are
// taken in graph definition order, so the result is identical for identical
// input. A cycle is reported as a *CycleError naming the nodes on it.
package dag
