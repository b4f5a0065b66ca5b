package bars

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnsupportedTimeframe is returned for timeframe strings outside the
// supported set.
var ErrUnsupportedTimeframe = errors.New("timeframe not supported")

// Timeframe is a fixed bucket width used when resampling.
type Timeframe string

const (
	OneMinute      Timeframe = "1m"
	FiveMinutes    Timeframe = "5m"
	FifteenMinutes Timeframe = "15m"
	ThirtyMinutes  Timeframe = "30m"
	OneHour        Timeframe = "1h"
	FourHours      Timeframe = "4h"
	OneDay         Timeframe = "1d"
)

var timeframeDurations = map[Timeframe]time.Duration{
	OneMinute:      time.Minute,
	FiveMinutes:    5 * time.Minute,
	FifteenMinutes: 15 * time.Minute,
	ThirtyMinutes:  30 * time.Minute,
	OneHour:        time.Hour,
	FourHours:      4 * time.Hour,
	OneDay:         24 * time.Hour,
}

// ParseTimeframe validates a timeframe string such as "5m" or "1d".
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := timeframeDurations[tf]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, s)
	}
	return tf, nil
}

// Duration returns the bucket width.
func (tf Timeframe) Duration() time.Duration {
	return timeframeDurations[tf]
}

// Milliseconds returns the bucket width in milliseconds.
func (tf Timeframe) Milliseconds() int64 {
	return tf.Duration().Milliseconds()
}

func (tf Timeframe) String() string {
	return string(tf)
}
