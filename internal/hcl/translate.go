// This file translates decoded HCL blocks into the format-agnostic strategy
// model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/signalgrid/internal/config"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateNode evaluates the node body. Attributes must be constant
// expressions; there are no variables or functions in scope.
func (l *Loader) translateNode(ctx context.Context, file string, n *nodeBlock) (*config.Node, error) {
	logger := ctxlog.FromContext(ctx).With("node_kind", n.Kind, "node_id", n.ID)

	attrs, diags := n.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("node '%s': %w", n.ID, diags)
	}

	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("node '%s': %w", n.ID, diags)
		}
		values[name] = val
	}
	logger.Debug("Translated HCL node.", "attributes", len(values))

	return &config.Node{
		Kind:       n.Kind,
		ID:         n.ID,
		Attributes: values,
		Origin:     origin(file, n.Body),
	}, nil
}

func (l *Loader) translateEdge(e *edgeBlock) (*config.Edge, error) {
	from, diags := portRefFromExpr(e.From)
	if diags.HasErrors() {
		return nil, diags
	}
	to, diags := portRefFromExpr(e.To)
	if diags.HasErrors() {
		return nil, diags
	}
	return &config.Edge{From: from, To: to, Origin: e.From.Range().String()}, nil
}

// origin returns "file:line" of the block when the body carries a source
// range.
func origin(file string, body hcl.Body) string {
	if b, ok := body.(*hclsyntax.Body); ok {
		return fmt.Sprintf("%s:%d", b.SrcRange.Filename, b.SrcRange.Start.Line)
	}
	return file
}
