// Package log provides logging helpers for stabex, built on top of the
// standard slog package.
//
// Scan diagnostics frequently quote raw lines from MOSES output files.
// Those lines can be hundreds of columns wide and may carry stray control
// characters from legacy codepages, which wrecks single-line log output.
// The TrimHandler wraps any slog.Handler and normalizes string attribute
// values before they reach it: control characters are stripped and
// oversized values are truncated with an ellipsis marker.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("dropping unparsed line", "line", rawLine)
//	slog.SetDefault(logger)
package log
