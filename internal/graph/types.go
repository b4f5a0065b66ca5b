// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines node kinds, port value types and ports.
package graph

import (
	"errors"

	"github.com/zclconf/go-cty/cty"
)

// ErrInvalidGraph is wrapped by every structural validation error.
var ErrInvalidGraph = errors.New("invalid graph")

// Kind is the discriminant of a node spec.
type Kind string

const (
	KindPrice      Kind = "price"
	KindIndicator  Kind = "indicator"
	KindMath       Kind = "math"
	KindComparison Kind = "comparison"
	KindLogic      Kind = "logic"
	KindAction     Kind = "action"
)

// ValueType is the type of values flowing through a port.
type ValueType int

const (
	Numeric ValueType = iota
	Boolean
)

func (t ValueType) String() string {
	switch t {
	case Numeric:
		return "number"
	case Boolean:
		return "bool"
	}
	return "unknown"
}

// CtyType returns the cty type used for default values of this port type.
func (t ValueType) CtyType() cty.Type {
	if t == Boolean {
		return cty.Bool
	}
	return cty.Number
}

// Port is one named, typed connection point on a node.
type Port struct {
	Name string
	Type ValueType
	// Default is broadcast across all rows when an input port has no
	// incoming edge. Nil means the input must be connected.
	Default *cty.Value
}

// Required reports whether the port must have an incoming edge.
func (p Port) Required() bool {
	return p.Default == nil
}

func numericInput(name string, def float64) Port {
	v := cty.NumberFloatVal(def)
	return Port{Name: name, Type: Numeric, Default: &v}
}

func booleanInput(name string) Port {
	v := cty.False
	return Port{Name: name, Type: Boolean, Default: &v}
}

func output(name string, t ValueType) Port {
	return Port{Name: name, Type: t}
}
