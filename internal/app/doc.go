// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the backtest lifecycle (load strategy,
// build graph, load bars, compile signals, execute, report, publish),
// decoupled from any specific entrypoint like a CLI or server.
package app
