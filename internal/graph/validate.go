package graph

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(logicArity, LogicSpec{})
	v.RegisterStructValidation(entrySide, ActionSpec{})
	return v
}

// logicArity enforces NOT = 1 input, AND/OR >= 2 inputs.
func logicArity(sl validator.StructLevel) {
	s := sl.Current().Interface().(LogicSpec)
	switch s.Operator {
	case OpNot:
		if s.Inputs != 1 {
			sl.ReportError(s.Inputs, "Inputs", "Inputs", "not_arity", "")
		}
	case OpAnd, OpOr:
		if s.Inputs < 2 {
			sl.ReportError(s.Inputs, "Inputs", "Inputs", "and_or_arity", string(s.Operator))
		}
	}
}

// entrySide requires a side on entry actions.
func entrySide(sl validator.StructLevel) {
	s := sl.Current().Interface().(ActionSpec)
	if s.ActionType == MarketEntry && s.Side == "" {
		sl.ReportError(s.Side, "Side", "Side", "entry_side", "")
	}
}

// validateSpec runs struct validation and renders failures as one
// human-readable error.
func validateSpec(spec Spec) error {
	err := validate.Struct(spec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "not_arity":
		return fmt.Sprintf("NOT requires exactly 1 input, got %v", fe.Value())
	case "and_or_arity":
		return fmt.Sprintf("%s requires at least 2 inputs, got %v", fe.Param(), fe.Value())
	case "entry_side":
		return "marketEntry requires side BUY or SELL"
	case "required":
		return fmt.Sprintf("attribute '%s' is required", field)
	case "oneof":
		return fmt.Sprintf("attribute '%s' must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value()))
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("attribute '%s' must be %s %s, got %v", field, comparisonWord(fe.Tag()), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("attribute '%s' failed '%s' validation", field, fe.Tag())
}

func comparisonWord(tag string) string {
	switch tag {
	case "gt":
		return ">"
	case "gte":
		return ">="
	case "lt":
		return "<"
	}
	return "<="
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
