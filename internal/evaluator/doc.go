// Package evaluator computes the output series of graph nodes against a bar
// table.
//
// A Context is created per compilation run. It owns the memoization cache
// keyed by node id, so a node shared by several consumers is computed once
// per run, and it is discarded when the run ends. Dispatch over node kinds
// goes through graph.Visitor, which makes a missing kind a compile error.
//
// Inputs are resolved by following the incoming edge of each input port.
// An unconnected math, comparison, logic or action input is filled with the
// port default broadcast across all rows. An unconnected indicator input is
// a *MissingInputError.
package evaluator
