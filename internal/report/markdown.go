package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/seakeeper/stabex/internal/model"
)

// MarkdownWriter outputs the formatted tabular report.
// This is the rendered document the CLI writes to the output file.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the extraction result as a markdown document.
func (w *MarkdownWriter) Write(result *model.ExtractionResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeCases(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the document title and run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ExtractionResult) {
	md.H1("MOSES Stability Extraction Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Input File", "`" + result.InputFile + "`"},
			{"Layout", string(result.Layout)},
			{"Extracted", result.ExtractedAt.Format("2006-01-02 15:04:05 MST")},
			{"Cases", strconv.Itoa(len(result.Records))},
		},
	})
	md.PlainText("")
}

// writeCases writes the extracted case table for the result's layout.
func (w *MarkdownWriter) writeCases(md *markdown.Markdown, result *model.ExtractionResult) {
	md.H2("Extracted Cases")
	md.PlainText("")

	if len(result.Records) == 0 {
		md.Note("No complete case records were found in the input file.")
		md.PlainText("")
		return
	}

	if result.Layout == model.LayoutExtended {
		w.writeExtendedTable(md, result)
	} else {
		w.writeBasicTable(md, result)
	}
	md.PlainText("")
	md.PlainTextf("Draft readings in meters, angles in degrees. %s marks stations absent from the input.", missingValue)
	md.PlainText("")
}

// writeBasicTable writes the damage/GM/draft table of the basic layout.
func (w *MarkdownWriter) writeBasicTable(md *markdown.Markdown, result *model.ExtractionResult) {
	header := []string{"Case", "GM (m)"}
	for _, station := range model.DraftStations() {
		header = append(header, station+" (m)")
	}

	rows := make([][]string, 0, len(result.Records))
	for i := range result.Records {
		record := &result.Records[i]
		row := []string{record.CaseID, formatMeters(record.GM)}
		for _, station := range model.DraftStations() {
			row = append(row, formatDraft(record, station))
		}
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{Header: header, Rows: rows})
}

// writeExtendedTable writes the towing criteria table of the extended layout.
func (w *MarkdownWriter) writeExtendedTable(md *markdown.Markdown, result *model.ExtractionResult) {
	header := []string{"Case", "Heel (deg)", "Trim (deg)", "Req. Area Ratio", "Act. Area Ratio", "Remark"}
	for _, station := range model.DraftStations() {
		header = append(header, station+" (m)")
	}

	rows := make([][]string, 0, len(result.Records))
	for i := range result.Records {
		record := &result.Records[i]
		row := []string{
			record.CaseID,
			formatMeters(record.Heel),
			formatMeters(record.Trim),
			formatMeters(record.RequiredAreaRatio),
			formatMeters(record.ActualAreaRatio),
			record.Remark,
		}
		for _, station := range model.DraftStations() {
			row = append(row, formatDraft(record, station))
		}
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{Header: header, Rows: rows})
}

// writeFooter writes the document footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("Generated by stabex")
}
