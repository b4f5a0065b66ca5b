// internal/nodeid/doc.go

/*
Package nodeid provides the identifier types used to address nodes and their
ports inside a strategy graph.

A node identifier is a single name segment such as `sma20` or `entry-long`.
A port reference joins a node identifier and a port name with a dot, e.g.
`sma20.value` or `bands.upperBand`.

This package centralizes the formatting and parsing of both so that loaders
and the graph builder agree on one canonical form.
*/
package nodeid
