// Package config defines the format-agnostic strategy model and the Loader
// interface that concrete file formats implement.
//
// A config.Strategy is the raw, unvalidated description of a strategy graph:
// nodes with a kind tag and loosely typed attributes, and edges between
// port references. The graph package turns it into a validated Graph.
// Concrete loaders, such as HCL and JSON, live in separate packages.
package config
