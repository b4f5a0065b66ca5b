// Package publish pushes backtest results to a socket.io endpoint, such as
// the strategy editor that submitted the graph.
package publish
