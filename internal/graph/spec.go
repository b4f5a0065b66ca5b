// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the per-kind node specs and the Visitor used to dispatch
// over them exhaustively.
package graph

import (
	"github.com/specialistvlad/signalgrid/internal/bars"
	"github.com/specialistvlad/signalgrid/internal/indicator"
)

// Spec is the validated, kind-specific configuration of a node. The set of
// implementations is closed to this package.
type Spec interface {
	Kind() Kind
	accept(n *Node, v Visitor) error
}

// Visitor handles every node kind.
type Visitor interface {
	VisitPrice(n *Node, s *PriceSpec) error
	VisitIndicator(n *Node, s *IndicatorSpec) error
	VisitMath(n *Node, s *MathSpec) error
	VisitComparison(n *Node, s *ComparisonSpec) error
	VisitLogic(n *Node, s *LogicSpec) error
	VisitAction(n *Node, s *ActionSpec) error
}

// PriceSpec selects one OHLCV column.
type PriceSpec struct {
	Field bars.Field `validate:"required,oneof=open high low close volume"`
}

// IndicatorSpec binds a node to an indicator definition with resolved
// parameters.
type IndicatorSpec struct {
	Indicator  string `validate:"required"`
	Params     indicator.Params
	Definition *indicator.Definition `validate:"required"`
}

// MathOp is an arithmetic operator.
type MathOp string

const (
	OpAdd MathOp = "+"
	OpSub MathOp = "-"
	OpMul MathOp = "*"
	OpDiv MathOp = "/"
	OpMod MathOp = "%"
)

// MathSpec applies an arithmetic operator to left and right.
type MathSpec struct {
	Operator MathOp `validate:"required,oneof=+ - * / %"`
}

// CompareOp is a comparison operator.
type CompareOp string

const (
	OpEq CompareOp = "=="
	OpNe CompareOp = "!="
	OpLt CompareOp = "<"
	OpLe CompareOp = "<="
	OpGt CompareOp = ">"
	OpGe CompareOp = ">="
)

// ComparisonSpec compares left and right.
type ComparisonSpec struct {
	Operator CompareOp `validate:"required,oneof=== != < <= > >="`
}

// LogicOp is a boolean operator.
type LogicOp string

const (
	OpAnd LogicOp = "AND"
	OpOr  LogicOp = "OR"
	OpNot LogicOp = "NOT"
)

// LogicSpec combines Inputs boolean inputs named in0..in{Inputs-1}.
type LogicSpec struct {
	Operator LogicOp `validate:"required,oneof=AND OR NOT"`
	Inputs   int     `validate:"gte=1,lte=64"`
}

// ActionType distinguishes entry and exit actions.
type ActionType string

const (
	MarketEntry ActionType = "marketEntry"
	MarketExit  ActionType = "marketExit"
)

// Side is the direction of an entry action.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ActionSpec is an order sink fired by its trigger input.
type ActionSpec struct {
	ActionType ActionType `validate:"required,oneof=marketEntry marketExit"`
	Side       Side       `validate:"omitempty,oneof=BUY SELL"`
	Size       float64    `validate:"gt=0"`
}

// IsEntry reports whether the action opens a position.
func (s *ActionSpec) IsEntry() bool { return s.ActionType == MarketEntry }

// IsExit reports whether the action closes a position.
func (s *ActionSpec) IsExit() bool { return s.ActionType == MarketExit }

// IsShort reports whether an entry action opens a short position.
func (s *ActionSpec) IsShort() bool { return s.IsEntry() && s.Side == Sell }

func (*PriceSpec) Kind() Kind      { return KindPrice }
func (*IndicatorSpec) Kind() Kind  { return KindIndicator }
func (*MathSpec) Kind() Kind       { return KindMath }
func (*ComparisonSpec) Kind() Kind { return KindComparison }
func (*LogicSpec) Kind() Kind      { return KindLogic }
func (*ActionSpec) Kind() Kind     { return KindAction }

func (s *PriceSpec) accept(n *Node, v Visitor) error      { return v.VisitPrice(n, s) }
func (s *IndicatorSpec) accept(n *Node, v Visitor) error  { return v.VisitIndicator(n, s) }
func (s *MathSpec) accept(n *Node, v Visitor) error       { return v.VisitMath(n, s) }
func (s *ComparisonSpec) accept(n *Node, v Visitor) error { return v.VisitComparison(n, s) }
func (s *LogicSpec) accept(n *Node, v Visitor) error      { return v.VisitLogic(n, s) }
func (s *ActionSpec) accept(n *Node, v Visitor) error     { return v.VisitAction(n, s) }
