package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level items from any
// file.
type fileRoot struct {
	Name  string       `hcl:"name,optional"`
	Nodes []*nodeBlock `hcl:"node,block"`
	Edges []*edgeBlock `hcl:"edge,block"`
}

// nodeBlock is `node "<kind>" "<id>" { ... }`. Its attributes depend on the
// kind and are kept as a raw body.
type nodeBlock struct {
	Kind string   `hcl:"kind,label"`
	ID   string   `hcl:"id,label"`
	Body hcl.Body `hcl:",remain"`
}

// edgeBlock is `edge { from = a.value  to = b.left }`.
type edgeBlock struct {
	From hcl.Expression `hcl:"from"`
	To   hcl.Expression `hcl:"to"`
}
