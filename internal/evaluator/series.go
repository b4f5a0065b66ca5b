package evaluator

import (
	"github.com/specialistvlad/signalgrid/internal/graph"
)

// Series is a numeric or boolean column aligned row-for-row with the bar
// table.
type Series struct {
	typ   graph.ValueType
	nums  []float64
	bools []bool
}

// Outputs maps an output port name to its series.
type Outputs map[string]Series

// NumericSeries wraps a float column. The slice is not copied.
func NumericSeries(v []float64) Series {
	return Series{typ: graph.Numeric, nums: v}
}

// BooleanSeries wraps a bool column. The slice is not copied.
func BooleanSeries(v []bool) Series {
	return Series{typ: graph.Boolean, bools: v}
}

// Type returns the value type.
func (s Series) Type() graph.ValueType {
	return s.typ
}

// Len returns the number of rows.
func (s Series) Len() int {
	if s.typ == graph.Boolean {
		return len(s.bools)
	}
	return len(s.nums)
}

// Numbers returns the numeric column, or nil for boolean series.
func (s Series) Numbers() []float64 {
	return s.nums
}

// Bools returns the boolean column, or nil for numeric series.
func (s Series) Bools() []bool {
	return s.bools
}
