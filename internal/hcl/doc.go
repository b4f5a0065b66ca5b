// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, and translating
// `node` and `edge` blocks into the format-agnostic strategy model.
//
// A strategy file looks like:
//
//	name = "sma_cross"
//
//	node "price" "close" {
//	  field = "close"
//	}
//
//	node "indicator" "fast" {
//	  indicator = "sma"
//	  period    = 20
//	}
//
//	edge {
//	  from = close.value
//	  to   = fast.source
//	}
//
// Edge endpoints are `node.port` traversals; identifiers that are not valid
// HCL names (for example ones containing a dash) can be quoted instead:
// `from = "my-node.value"`.
package hcl
