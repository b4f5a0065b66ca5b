package indicator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Param declares one tunable indicator parameter.
type Param struct {
	Name    string
	Default float64
	// Rule is a validator tag applied to the resolved value, e.g. "gte=1".
	Rule string
	// Integer requires a whole-number value.
	Integer bool
}

// Params holds resolved parameter values by name.
type Params map[string]float64

// Int returns the named parameter truncated to an int.
func (p Params) Int(name string) int {
	return int(p[name])
}

// Float returns the named parameter.
func (p Params) Float(name string) float64 {
	return p[name]
}

// Resolve merges user-supplied values with the definition defaults and
// validates the result. Unknown parameter names are rejected.
func (d *Definition) Resolve(given map[string]float64) (Params, error) {
	known := make(map[string]Param, len(d.Params))
	for _, p := range d.Params {
		known[p.Name] = p
	}

	var unknown []string
	for name := range given {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("indicator '%s': unknown parameter(s) %s", d.Name, strings.Join(unknown, ", "))
	}

	out := make(Params, len(d.Params))
	for _, p := range d.Params {
		v, ok := given[p.Name]
		if !ok {
			v = p.Default
		}
		if err := p.check(v); err != nil {
			return nil, fmt.Errorf("indicator '%s': %w", d.Name, err)
		}
		out[p.Name] = v
	}

	if d.Check != nil {
		if err := d.Check(out); err != nil {
			return nil, fmt.Errorf("indicator '%s': %w", d.Name, err)
		}
	}
	return out, nil
}

func (p Param) check(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("parameter '%s' must be finite", p.Name)
	}
	if p.Integer && v != math.Trunc(v) {
		return fmt.Errorf("parameter '%s' must be a whole number, got %v", p.Name, v)
	}
	if p.Rule == "" {
		return nil
	}
	if err := validate.Var(v, p.Rule); err != nil {
		return fmt.Errorf("parameter '%s' = %v violates rule '%s'", p.Name, v, p.Rule)
	}
	return nil
}
