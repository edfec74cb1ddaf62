package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/seakeeper/stabex/internal/model"
)

// SimpleWriter outputs a human-readable preview table.
// This is the format the CLI prints to the terminal before writing the
// rendered report file.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose adds run provenance detail (source hash) to the header.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the preview table for the extraction result.
func (w *SimpleWriter) Write(result *model.ExtractionResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeTable(&sb, result)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the preview header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.ExtractionResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 78))
	sb.WriteString("\n")
	sb.WriteString("                       MOSES STABILITY EXTRACTION\n")
	sb.WriteString(strings.Repeat("=", 78))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Input File:  %s\n", result.InputFile))
	sb.WriteString(fmt.Sprintf("Layout:      %s\n", result.Layout))
	sb.WriteString(fmt.Sprintf("Extracted:   %s\n", result.ExtractedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Cases:       %d\n", len(result.Records)))
	if w.verbose && result.SourceHash != "" {
		sb.WriteString(fmt.Sprintf("Source Hash: %s\n", result.SourceHash))
	}
	sb.WriteString("\n")
}

// writeTable writes the per-case result rows for the result's layout.
func (w *SimpleWriter) writeTable(sb *strings.Builder, result *model.ExtractionResult) {
	sb.WriteString(strings.Repeat("-", 78))
	sb.WriteString("\n")

	if result.Layout == model.LayoutExtended {
		w.writeExtendedRows(sb, result)
	} else {
		w.writeBasicRows(sb, result)
	}

	sb.WriteString(strings.Repeat("-", 78))
	sb.WriteString("\n")
}

// writeBasicRows writes the basic layout table: case, GM, four drafts.
func (w *SimpleWriter) writeBasicRows(sb *strings.Builder, result *model.ExtractionResult) {
	sb.WriteString(fmt.Sprintf("%-10s %8s", "Case", "GM (m)"))
	for _, station := range model.DraftStations() {
		sb.WriteString(fmt.Sprintf(" %10s", station))
	}
	sb.WriteString("\n")

	for i := range result.Records {
		record := &result.Records[i]
		sb.WriteString(fmt.Sprintf("%-10s %8s", record.CaseID, formatMeters(record.GM)))
		for _, station := range model.DraftStations() {
			sb.WriteString(fmt.Sprintf(" %10s", formatDraft(record, station)))
		}
		sb.WriteString("\n")
	}
}

// writeExtendedRows writes the extended layout table: case, angles,
// area ratios, remark, four drafts.
func (w *SimpleWriter) writeExtendedRows(sb *strings.Builder, result *model.ExtractionResult) {
	sb.WriteString(fmt.Sprintf("%-10s %9s %9s %10s %10s %7s",
		"Case", "Heel", "Trim", "Req Ratio", "Act Ratio", "Remark"))
	for _, station := range model.DraftStations() {
		sb.WriteString(fmt.Sprintf(" %10s", station))
	}
	sb.WriteString("\n")

	for i := range result.Records {
		record := &result.Records[i]
		sb.WriteString(fmt.Sprintf("%-10s %9s %9s %10s %10s %7s",
			record.CaseID,
			formatMeters(record.Heel),
			formatMeters(record.Trim),
			formatMeters(record.RequiredAreaRatio),
			formatMeters(record.ActualAreaRatio),
			record.Remark,
		))
		for _, station := range model.DraftStations() {
			sb.WriteString(fmt.Sprintf(" %10s", formatDraft(record, station)))
		}
		sb.WriteString("\n")
	}
}

// writeFooter writes the preview footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString("Draft readings in meters, angles in degrees.\n")
}
