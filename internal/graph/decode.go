package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/specialistvlad/signalgrid/internal/bars"
	"github.com/specialistvlad/signalgrid/internal/config"
	"github.com/specialistvlad/signalgrid/internal/indicator"
	"github.com/specialistvlad/signalgrid/internal/nodeid"
)

// logicPortPrefix is the name prefix of boolean logic inputs: in0, in1, ...
const logicPortPrefix = "in"

// maxLogicInputs bounds the fan-in of one boolean logic node.
const maxLogicInputs = 64

// LogicInputName returns the name of the i-th boolean logic input.
func LogicInputName(i int) string {
	return fmt.Sprintf("%s%d", logicPortPrefix, i)
}

// decoder turns raw node configs into typed nodes.
type decoder struct {
	indicators *indicator.Registry
	// fanIn is the number of logic inputs implied by edges, per node id.
	fanIn map[string]int
}

func (d *decoder) decode(cfg *config.Node, id nodeid.ID) (*Node, error) {
	attrs := newAttributes(cfg.Attributes)
	n := &Node{ID: id, Origin: cfg.Origin}

	var err error
	switch Kind(strings.ToLower(cfg.Kind)) {
	case KindPrice:
		err = d.decodePrice(n, attrs)
	case KindIndicator:
		err = d.decodeIndicator(n, attrs)
	case KindMath:
		err = d.decodeMath(n, attrs)
	case KindComparison:
		err = d.decodeComparison(n, attrs)
	case KindLogic:
		err = d.decodeLogic(n, attrs, cfg.ID)
	case KindAction:
		err = d.decodeAction(n, attrs)
	default:
		return nil, fmt.Errorf("unknown node kind '%s'", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}

	if unused := attrs.Unused(); len(unused) > 0 {
		return nil, fmt.Errorf("unsupported attribute(s) for %s node: %s", n.Kind(), strings.Join(unused, ", "))
	}
	if err := validateSpec(n.Spec); err != nil {
		return nil, err
	}
	return n, nil
}

func (d *decoder) decodePrice(n *Node, attrs *attributes) error {
	field, err := attrs.String("field", string(bars.FieldClose))
	if err != nil {
		return err
	}
	n.Spec = &PriceSpec{Field: bars.Field(strings.ToLower(field))}
	n.Outputs = []Port{output("value", Numeric)}
	return nil
}

func (d *decoder) decodeIndicator(n *Node, attrs *attributes) error {
	name, err := attrs.String("indicator", "")
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("attribute 'indicator' is required")
	}
	name = strings.ToLower(name)

	def, ok := d.indicators.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown indicator '%s' (known: %s)", name, strings.Join(d.indicators.Names(), ", "))
	}

	// Every remaining attribute is an indicator parameter.
	given := make(map[string]float64)
	for _, param := range attrs.Unused() {
		v, _, err := attrs.Number(param, 0)
		if err != nil {
			return err
		}
		given[param] = v
	}

	params, err := def.Resolve(given)
	if err != nil {
		return err
	}

	n.Spec = &IndicatorSpec{Indicator: name, Params: params, Definition: def}
	for _, in := range def.Inputs {
		n.Inputs = append(n.Inputs, Port{Name: in, Type: Numeric})
	}
	for _, out := range def.Outputs {
		n.Outputs = append(n.Outputs, output(out, Numeric))
	}
	return nil
}

func (d *decoder) binaryInputs(attrs *attributes) ([]Port, error) {
	left, _, err := attrs.Number("left", 0)
	if err != nil {
		return nil, err
	}
	right, _, err := attrs.Number("right", 0)
	if err != nil {
		return nil, err
	}
	return []Port{numericInput("left", left), numericInput("right", right)}, nil
}

func (d *decoder) decodeMath(n *Node, attrs *attributes) error {
	op, err := attrs.String("operator", "")
	if err != nil {
		return err
	}
	if n.Inputs, err = d.binaryInputs(attrs); err != nil {
		return err
	}
	n.Spec = &MathSpec{Operator: MathOp(op)}
	n.Outputs = []Port{output("value", Numeric)}
	return nil
}

func (d *decoder) decodeComparison(n *Node, attrs *attributes) error {
	op, err := attrs.String("operator", "")
	if err != nil {
		return err
	}
	if n.Inputs, err = d.binaryInputs(attrs); err != nil {
		return err
	}
	n.Spec = &ComparisonSpec{Operator: CompareOp(op)}
	n.Outputs = []Port{output("true", Boolean)}
	return nil
}

func (d *decoder) decodeLogic(n *Node, attrs *attributes, rawID string) error {
	op, err := attrs.String("operator", "")
	if err != nil {
		return err
	}
	op = strings.ToUpper(op)

	count, explicit, err := attrs.Number("inputs", 0)
	if err != nil {
		return err
	}
	if explicit && count != math.Trunc(count) {
		return fmt.Errorf("attribute 'inputs' must be a whole number, got %v", count)
	}
	if !explicit {
		count = float64(d.fanIn[rawID])
		if count == 0 {
			count = 2
			if LogicOp(op) == OpNot {
				count = 1
			}
		}
	}

	spec := &LogicSpec{Operator: LogicOp(op), Inputs: int(count)}
	n.Spec = spec
	for i := 0; i < min(spec.Inputs, maxLogicInputs); i++ {
		n.Inputs = append(n.Inputs, booleanInput(LogicInputName(i)))
	}
	n.Outputs = []Port{output("true", Boolean)}
	return nil
}

func (d *decoder) decodeAction(n *Node, attrs *attributes) error {
	actionType, err := attrs.String("actionType", "")
	if err != nil {
		return err
	}
	side, err := attrs.String("side", "")
	if err != nil {
		return err
	}
	size, _, err := attrs.Number("size", 1)
	if err != nil {
		return err
	}

	n.Spec = &ActionSpec{ActionType: ActionType(actionType), Side: Side(strings.ToUpper(side)), Size: size}
	n.Inputs = []Port{booleanInput("trigger")}
	return nil
}

// logicFanIn counts, per target node id, how many `inN` inputs the edges
// imply (highest index + 1).
func logicFanIn(edges []*config.Edge) map[string]int {
	fanIn := make(map[string]int)
	for _, e := range edges {
		port := e.To.Port
		if !strings.HasPrefix(port, logicPortPrefix) {
			continue
		}
		var idx int
		if _, err := fmt.Sscanf(port, logicPortPrefix+"%d", &idx); err != nil || LogicInputName(idx) != port {
			continue
		}
		if idx+1 > fanIn[string(e.To.Node)] {
			fanIn[string(e.To.Node)] = idx + 1
		}
	}
	return fanIn
}
