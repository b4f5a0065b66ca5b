package indicator

import (
	"fmt"
	"sort"
	"sync"
)

// Inputs maps an input port name to its series.
type Inputs map[string][]float64

// Outputs maps an output port name to its series.
type Outputs map[string][]float64

// ComputeFunc calculates every output of an indicator. Params have already
// been resolved and validated.
type ComputeFunc func(in Inputs, p Params) Outputs

// Definition describes one indicator kind.
type Definition struct {
	Name        string
	Description string
	Inputs      []string
	Outputs     []string
	Params      []Param
	// Check validates relationships between parameters, e.g. fast < slow.
	Check   func(p Params) error
	Compute ComputeFunc
}

// Registry holds indicator definitions for one application instance.
type Registry struct {
	defs map[string]*Definition
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition. Registering the same name twice is a
// programmer error and panics.
func (r *Registry) Register(def *Definition) {
	if _, exists := r.defs[def.Name]; exists {
		panic(fmt.Sprintf("indicator '%s' already registered", def.Name))
	}
	r.defs[def.Name] = def
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names returns all registered indicator names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builtin = sync.OnceValue(func() *Registry {
	r := New()
	for _, def := range builtinDefinitions() {
		r.Register(def)
	}
	return r
})

// Builtin returns the shared registry of built-in indicators. It must be
// treated as read-only.
func Builtin() *Registry {
	return builtin()
}
