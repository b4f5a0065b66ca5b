// Package bars holds the historical price data a strategy is evaluated
// against: the Bar record, the column-oriented Table the evaluator reads
// from, and the Timeframe resampler that groups bars into coarser buckets.
//
// A Table is immutable once built. It is always sorted ascending by
// timestamp and never contains two bars with the same timestamp.
package bars
