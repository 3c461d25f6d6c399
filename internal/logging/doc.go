// Package logging assembles structured slog loggers and formatting helpers used
// across scrobblegraph.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so conversion code automatically tags log
// lines with the run ID and the input row. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
