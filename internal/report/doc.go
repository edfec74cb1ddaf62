// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Fixed-width preview table for terminal display
//   - MarkdownWriter: Formatted tabular document for sharing
//   - JSONWriter: Structured JSON output for tool integration
//   - CSVWriter: Flat rows for spreadsheet import
//
// Design decision: We separate report writing from the record data
// structures (which are in the model package) to follow the single
// responsibility principle. The extractor only hands writers an ordered
// record sequence; the writers own all presentation concerns.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
