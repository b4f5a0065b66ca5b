package graph

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// attributes wraps a node's raw cty attributes and remembers which ones the
// decoder consumed, so leftovers can be reported.
type attributes struct {
	values map[string]cty.Value
	used   map[string]struct{}
}

func newAttributes(values map[string]cty.Value) *attributes {
	if values == nil {
		values = map[string]cty.Value{}
	}
	return &attributes{values: values, used: make(map[string]struct{})}
}

func (a *attributes) lookup(name string) (cty.Value, bool, error) {
	a.used[name] = struct{}{}
	v, ok := a.values[name]
	if !ok || v.IsNull() {
		return cty.NilVal, false, nil
	}
	if !v.IsWhollyKnown() {
		return cty.NilVal, false, fmt.Errorf("attribute '%s' has an unknown value", name)
	}
	return v, true, nil
}

// String returns the named attribute as a string, or def when absent.
func (a *attributes) String(name, def string) (string, error) {
	v, ok, err := a.lookup(name)
	if err != nil || !ok {
		return def, err
	}
	cv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("attribute '%s': expected a string, got %s", name, v.Type().FriendlyName())
	}
	var s string
	if err := gocty.FromCtyValue(cv, &s); err != nil {
		return "", fmt.Errorf("attribute '%s': %w", name, err)
	}
	return s, nil
}

// Number returns the named attribute as a float64 and whether it was set.
func (a *attributes) Number(name string, def float64) (float64, bool, error) {
	v, ok, err := a.lookup(name)
	if err != nil || !ok {
		return def, false, err
	}
	cv, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, false, fmt.Errorf("attribute '%s': expected a number, got %s", name, v.Type().FriendlyName())
	}
	var f float64
	if err := gocty.FromCtyValue(cv, &f); err != nil {
		return 0, false, fmt.Errorf("attribute '%s': %w", name, err)
	}
	return f, true, nil
}

// Unused returns the names of attributes not yet consumed, sorted.
func (a *attributes) Unused() []string {
	var names []string
	for name := range a.values {
		if _, ok := a.used[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
