package bars

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	// ErrDuplicateTimestamp is returned when two bars share one timestamp.
	ErrDuplicateTimestamp = errors.New("duplicate bar timestamp")
	// ErrNonFinite is returned for NaN or infinite prices and volumes.
	ErrNonFinite = errors.New("non-finite bar value")
)

// Table is an ordered, column-oriented collection of bars.
type Table struct {
	timestamps []int64
	columns    map[Field][]float64
}

// NewTable builds a Table from bars in any order. The input slice is not
// modified.
func NewTable(in []Bar) (*Table, error) {
	sorted := make([]Bar, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	t := &Table{
		timestamps: make([]int64, len(sorted)),
		columns:    make(map[Field][]float64, len(Fields)),
	}
	for _, f := range Fields {
		t.columns[f] = make([]float64, len(sorted))
	}

	for i, b := range sorted {
		if i > 0 && b.Timestamp == sorted[i-1].Timestamp {
			return nil, fmt.Errorf("%w: %d (%s)", ErrDuplicateTimestamp, b.Timestamp, b.Time().Format(time.RFC3339))
		}
		t.timestamps[i] = b.Timestamp
		for _, f := range Fields {
			v := b.value(f)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s is %v at %s", ErrNonFinite, f, v, b.Time().Format(time.RFC3339))
			}
			t.columns[f][i] = v
		}
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.timestamps)
}

// Timestamps returns the timestamp column. Callers must not modify it.
func (t *Table) Timestamps() []int64 {
	return t.timestamps
}

// Column returns the named column. Callers must not modify it.
func (t *Table) Column(f Field) []float64 {
	return t.columns[f]
}

// Time returns the timestamp of row i as a UTC time.
func (t *Table) Time(i int) time.Time {
	return time.UnixMilli(t.timestamps[i]).UTC()
}

// Bar reassembles row i.
func (t *Table) Bar(i int) Bar {
	return Bar{
		Timestamp: t.timestamps[i],
		Open:      t.columns[FieldOpen][i],
		High:      t.columns[FieldHigh][i],
		Low:       t.columns[FieldLow][i],
		Close:     t.columns[FieldClose][i],
		Volume:    t.columns[FieldVolume][i],
	}
}

// Bars returns all rows in order.
func (t *Table) Bars() []Bar {
	out := make([]Bar, t.Len())
	for i := range out {
		out[i] = t.Bar(i)
	}
	return out
}

// Filter returns the rows with start <= time < end. A zero start or end
// leaves that side unbounded.
func (t *Table) Filter(start, end time.Time) *Table {
	lo := 0
	if !start.IsZero() {
		ms := start.UnixMilli()
		lo = sort.Search(t.Len(), func(i int) bool { return t.timestamps[i] >= ms })
	}
	hi := t.Len()
	if !end.IsZero() {
		ms := end.UnixMilli()
		hi = sort.Search(t.Len(), func(i int) bool { return t.timestamps[i] >= ms })
	}
	if hi < lo {
		hi = lo
	}

	out := &Table{
		timestamps: t.timestamps[lo:hi:hi],
		columns:    make(map[Field][]float64, len(Fields)),
	}
	for _, f := range Fields {
		out.columns[f] = t.columns[f][lo:hi:hi]
	}
	return out
}
