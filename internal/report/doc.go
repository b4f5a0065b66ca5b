// Package report writes compiled signals, executed trades and the run
// summary as CSV, Arrow IPC and JSON.
package report
