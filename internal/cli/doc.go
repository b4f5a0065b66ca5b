// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags into app.Config; range bounds and money amounts are
// parsed here so the app only ever sees typed values.
package cli
