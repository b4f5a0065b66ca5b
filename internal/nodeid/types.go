// internal/nodeid/types.go
package nodeid

// ID is the stable identifier of a node within one graph.
type ID string

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// PortRef addresses one named port on one node.
type PortRef struct {
	Node ID
	Port string
}

// NewPortRef creates a port reference from its parts.
func NewPortRef(node ID, port string) PortRef {
	return PortRef{Node: node, Port: port}
}

// String serializes the reference into its canonical `node.port` form.
func (r PortRef) String() string {
	return string(r.Node) + "." + r.Port
}

// IsZero reports whether the reference is unset.
func (r PortRef) IsZero() bool {
	return r.Node == "" && r.Port == ""
}
