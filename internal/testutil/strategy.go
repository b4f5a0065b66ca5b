package testutil

import (
	"github.com/specialistvlad/signalgrid/internal/config"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// StrategyBuilder assembles config.Strategy values for tests.
type StrategyBuilder struct {
	s *config.Strategy
}

// NewStrategy starts an empty strategy.
func NewStrategy() *StrategyBuilder {
	return &StrategyBuilder{s: &config.Strategy{Name: "test"}}
}

// Node adds a node. attrs may be nil.
func (b *StrategyBuilder) Node(kind, id string, attrs map[string]cty.Value) *StrategyBuilder {
	b.s.Nodes = append(b.s.Nodes, &config.Node{Kind: kind, ID: id, Attributes: attrs})
	return b
}

// Price adds a price node reading the given field.
func (b *StrategyBuilder) Price(id, field string) *StrategyBuilder {
	return b.Node("price", id, map[string]cty.Value{"field": cty.StringVal(field)})
}

// Indicator adds an indicator node with numeric parameters.
func (b *StrategyBuilder) Indicator(id, name string, params map[string]float64) *StrategyBuilder {
	attrs := map[string]cty.Value{"indicator": cty.StringVal(name)}
	for k, v := range params {
		attrs[k] = cty.NumberFloatVal(v)
	}
	return b.Node("indicator", id, attrs)
}

// Math adds a math node.
func (b *StrategyBuilder) Math(id, op string) *StrategyBuilder {
	return b.Node("math", id, map[string]cty.Value{"operator": cty.StringVal(op)})
}

// Compare adds a comparison node.
func (b *StrategyBuilder) Compare(id, op string) *StrategyBuilder {
	return b.Node("comparison", id, map[string]cty.Value{"operator": cty.StringVal(op)})
}

// Logic adds a boolean logic node.
func (b *StrategyBuilder) Logic(id, op string) *StrategyBuilder {
	return b.Node("logic", id, map[string]cty.Value{"operator": cty.StringVal(op)})
}

// Entry adds a marketEntry action with the given side.
func (b *StrategyBuilder) Entry(id, side string) *StrategyBuilder {
	return b.Node("action", id, map[string]cty.Value{
		"actionType": cty.StringVal("marketEntry"),
		"side":       cty.StringVal(side),
	})
}

// Exit adds a marketExit action.
func (b *StrategyBuilder) Exit(id string) *StrategyBuilder {
	return b.Node("action", id, map[string]cty.Value{"actionType": cty.StringVal("marketExit")})
}

// Edge connects two `node.port` references. It panics on malformed
// references.
func (b *StrategyBuilder) Edge(from, to string) *StrategyBuilder {
	b.s.Edges = append(b.s.Edges, &config.Edge{From: mustRef(from), To: mustRef(to)})
	return b
}

// Build returns the assembled strategy.
func (b *StrategyBuilder) Build() *config.Strategy {
	return b.s
}

func mustRef(raw string) nodeid.PortRef {
	ref, err := nodeid.ParsePortRef(raw)
	if err != nil {
		panic(err)
	}
	return ref
}
