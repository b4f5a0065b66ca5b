package evaluator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/specialistvlad/signalgrid/internal/graph"
	"github.com/specialistvlad/signalgrid/internal/indicator"
)

// compiler evaluates a single node. It implements graph.Visitor.
type compiler struct {
	ctx *Context
	out Outputs
}

var _ graph.Visitor = (*compiler)(nil)

func (c *compiler) VisitPrice(n *graph.Node, s *graph.PriceSpec) error {
	col := c.ctx.table.Column(s.Field)
	if col == nil {
		return fmt.Errorf("%s: unknown price field '%s'", n, s.Field)
	}
	c.out = Outputs{"value": NumericSeries(col)}
	return nil
}

func (c *compiler) VisitIndicator(n *graph.Node, s *graph.IndicatorSpec) error {
	def := s.Definition
	in := make(indicator.Inputs, len(def.Inputs))
	for _, port := range def.Inputs {
		series, err := c.ctx.ResolveInput(n, port)
		if err != nil {
			return err
		}
		in[port] = series.Numbers()
	}

	computed := def.Compute(in, s.Params)

	c.out = make(Outputs, len(def.Outputs))
	for _, port := range def.Outputs {
		col, ok := computed[port]
		if !ok {
			return fmt.Errorf("%s: indicator '%s' did not produce output '%s'", n, def.Name, port)
		}
		if len(col) != c.ctx.Rows() {
			return fmt.Errorf("%s: indicator '%s' output '%s' has %d rows, want %d", n, def.Name, port, len(col), c.ctx.Rows())
		}
		c.out[port] = NumericSeries(col)
	}
	return nil
}

func (c *compiler) binary(n *graph.Node) (left, right []float64, err error) {
	l, err := c.ctx.ResolveInput(n, "left")
	if err != nil {
		return nil, nil, err
	}
	r, err := c.ctx.ResolveInput(n, "right")
	if err != nil {
		return nil, nil, err
	}
	return l.Numbers(), r.Numbers(), nil
}

func (c *compiler) VisitMath(n *graph.Node, s *graph.MathSpec) error {
	left, right, err := c.binary(n)
	if err != nil {
		return err
	}

	apply, err := mathFunc(s.Operator)
	if err != nil {
		return fmt.Errorf("%s: %w", n, err)
	}

	out := make([]float64, len(left))
	for i := range out {
		out[i] = apply(left[i], right[i])
	}
	c.out = Outputs{"value": NumericSeries(out)}
	return nil
}

// mathFunc returns the elementwise operator. Division and modulo by an
// exact zero yield 0.
func mathFunc(op graph.MathOp) (func(l, r float64) float64, error) {
	switch op {
	case graph.OpAdd:
		return func(l, r float64) float64 { return l + r }, nil
	case graph.OpSub:
		return func(l, r float64) float64 { return l - r }, nil
	case graph.OpMul:
		return func(l, r float64) float64 { return l * r }, nil
	case graph.OpDiv:
		return func(l, r float64) float64 {
			if r == 0 {
				return 0
			}
			return l / r
		}, nil
	case graph.OpMod:
		return func(l, r float64) float64 {
			if r == 0 {
				return 0
			}
			return math.Mod(l, r)
		}, nil
	}
	return nil, fmt.Errorf("unsupported math operator '%s'", op)
}

func (c *compiler) VisitComparison(n *graph.Node, s *graph.ComparisonSpec) error {
	left, right, err := c.binary(n)
	if err != nil {
		return err
	}

	cmp, err := compareFunc(s.Operator)
	if err != nil {
		return fmt.Errorf("%s: %w", n, err)
	}

	out := make([]bool, len(left))
	for i := range out {
		out[i] = cmp(left[i], right[i])
	}
	c.out = Outputs{"true": BooleanSeries(out)}
	return nil
}

// compareFunc returns the elementwise comparison. No epsilon is applied.
func compareFunc(op graph.CompareOp) (func(l, r float64) bool, error) {
	switch op {
	case graph.OpEq:
		return func(l, r float64) bool { return l == r }, nil
	case graph.OpNe:
		return func(l, r float64) bool { return l != r }, nil
	case graph.OpLt:
		return func(l, r float64) bool { return l < r }, nil
	case graph.OpLe:
		return func(l, r float64) bool { return l <= r }, nil
	case graph.OpGt:
		return func(l, r float64) bool { return l > r }, nil
	case graph.OpGe:
		return func(l, r float64) bool { return l >= r }, nil
	}
	return nil, fmt.Errorf("unsupported comparison operator '%s'", op)
}

func (c *compiler) VisitLogic(n *graph.Node, s *graph.LogicSpec) error {
	ports := logicPorts(n)
	operands := make([][]bool, 0, len(ports))
	for _, port := range ports {
		series, err := c.ctx.ResolveInput(n, port)
		if err != nil {
			return err
		}
		operands = append(operands, series.Bools())
	}

	rows := c.ctx.Rows()
	out := make([]bool, rows)
	switch s.Operator {
	case graph.OpAnd:
		for i := range out {
			v := true
			for _, op := range operands {
				v = v && op[i]
			}
			out[i] = v
		}
	case graph.OpOr:
		for i := range out {
			for _, op := range operands {
				if op[i] {
					out[i] = true
					break
				}
			}
		}
	case graph.OpNot:
		if len(operands) != 1 {
			return fmt.Errorf("%s: NOT requires exactly 1 input, got %d", n, len(operands))
		}
		for i := range out {
			out[i] = !operands[0][i]
		}
	default:
		return fmt.Errorf("%s: unsupported logic operator '%s'", n, s.Operator)
	}

	c.out = Outputs{"true": BooleanSeries(out)}
	return nil
}

// logicPorts returns the node's `inN` input names ordered by numeric
// suffix, so in10 follows in9.
func logicPorts(n *graph.Node) []string {
	type indexed struct {
		name string
		idx  int
	}
	var ports []indexed
	for _, p := range n.Inputs {
		idx, err := strconv.Atoi(strings.TrimPrefix(p.Name, "in"))
		if err != nil {
			continue
		}
		ports = append(ports, indexed{name: p.Name, idx: idx})
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].idx < ports[j].idx })

	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.name
	}
	return names
}

// VisitAction produces no outputs. Its trigger is read by the signal
// aggregator through Context.ResolveInput.
func (c *compiler) VisitAction(_ *graph.Node, _ *graph.ActionSpec) error {
	c.out = Outputs{}
	return nil
}
