// Package logging constructs slog loggers with platter's console and JSON
// output formats and provides typed attribute helpers.
//
// The console handler renders a single line per record with a component
// prefix and key=value attributes; the JSON handler emits machine-parseable
// records with RFC3339 UTC timestamps. Both are selected by configuration.
package logging
