// Package indicator is the catalog of technical indicators an indicator node
// can dispatch to.
//
// Every indicator is described by a Definition: its named numeric inputs,
// its named numeric outputs, its tunable parameters with defaults and
// validation rules, and a Compute function. Definitions live in a Registry.
// The graph builder resolves and validates parameters against the registry
// when a graph is built, and the evaluator calls Compute at run time.
//
// Output series have the same length as the input series. Rows inside an
// indicator's warm-up window hold NaN.
package indicator
