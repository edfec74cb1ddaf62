package report

import (
	"io"
	"strconv"

	"github.com/seakeeper/stabex/internal/model"
)

// Writer defines the interface for report output.
// Implementations render an extraction result in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the extraction result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.ExtractionResult) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is how the CLI prints the terminal preview and writes the rendered
// report file in one pass.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write extraction results, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.ExtractionResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// missingValue is printed for draft stations absent from a record.
const missingValue = "N/A"

// formatMeters renders a measurement with the two-decimal precision MOSES
// reports drafts and GM in.
func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatDraft renders the reading for one station, or missingValue if the
// station was not observed.
func formatDraft(record *model.CaseRecord, station string) string {
	v, ok := record.Draft(station)
	if !ok {
		return missingValue
	}
	return formatMeters(v)
}
