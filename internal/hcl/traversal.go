package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// portRefFromExpr reads an edge endpoint. A bare `node.port` traversal is
// the normal form; a string literal is accepted for ids HCL cannot express
// as identifiers.
func portRefFromExpr(expr hcl.Expression) (nodeid.PortRef, hcl.Diagnostics) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if !diags.HasErrors() {
		return portRefFromTraversal(expr, traversal)
	}

	val, valDiags := expr.Value(nil)
	if valDiags.HasErrors() || val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
		return nodeid.PortRef{}, invalidRef(expr, "An edge endpoint must be a reference like `node.port` or a quoted \"node.port\" string.")
	}
	return parseRef(expr, val.AsString())
}

func portRefFromTraversal(expr hcl.Expression, traversal hcl.Traversal) (nodeid.PortRef, hcl.Diagnostics) {
	if len(traversal) != 2 {
		return nodeid.PortRef{}, invalidRef(expr, fmt.Sprintf("Expected exactly `node.port`, got %d parts.", len(traversal)))
	}
	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return nodeid.PortRef{}, invalidRef(expr, "The port must be an attribute name, not an index.")
	}
	return parseRef(expr, traversal.RootName()+"."+attr.Name)
}

func parseRef(expr hcl.Expression, raw string) (nodeid.PortRef, hcl.Diagnostics) {
	ref, err := nodeid.ParsePortRef(raw)
	if err != nil {
		return nodeid.PortRef{}, invalidRef(expr, err.Error())
	}
	return ref, nil
}

func invalidRef(expr hcl.Expression, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid edge endpoint",
		Detail:   detail,
		Subject:  expr.Range().Ptr(),
	}}
}
