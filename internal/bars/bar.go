package bars

import (
	"fmt"
	"strings"
	"time"
)

// Bar is one OHLCV observation. Timestamp is in Unix milliseconds.
type Bar struct {
	Timestamp int64   `parquet:"timestamp" json:"timestamp"`
	Open      float64 `parquet:"open" json:"open"`
	High      float64 `parquet:"high" json:"high"`
	Low       float64 `parquet:"low" json:"low"`
	Close     float64 `parquet:"close" json:"close"`
	Volume    float64 `parquet:"volume" json:"volume"`
}

// Time returns the bar timestamp as a UTC time.
func (b Bar) Time() time.Time {
	return time.UnixMilli(b.Timestamp).UTC()
}

// Field selects one OHLCV column.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

// Fields lists every selectable column in canonical order.
var Fields = []Field{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// ParseField converts a case-insensitive column name into a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown price field %q", s)
}

func (b Bar) value(f Field) float64 {
	switch f {
	case FieldOpen:
		return b.Open
	case FieldHigh:
		return b.High
	case FieldLow:
		return b.Low
	case FieldClose:
		return b.Close
	case FieldVolume:
		return b.Volume
	}
	return 0
}
