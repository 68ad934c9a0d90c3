// Package logging builds the slog loggers romclerk writes its run log with.
//
// Two handler formats exist: a console handler that renders timestamped
// human-readable lines with k=v attributes and a component prefix, and a
// JSON handler for machine consumption. NewFromConfig fans output to stdout
// and the run log file under the configured log directory.
package logging
