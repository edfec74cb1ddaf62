package report

import (
	"encoding/csv"
	"io"

	"github.com/seakeeper/stabex/internal/model"
)

// CSVWriter outputs extraction results as flat CSV rows for spreadsheet
// import. Column sets follow the same per-layout shapes as the markdown
// tables.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the extraction result as CSV.
// The byte count is approximate: encoding/csv does not report bytes
// written, so we count through an intermediate writer.
func (w *CSVWriter) Write(result *model.ExtractionResult) (int, error) {
	counter := &countingWriter{w: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(w.headerRow(result.Layout)); err != nil {
		return counter.n, err
	}
	for i := range result.Records {
		if err := cw.Write(w.recordRow(result.Layout, &result.Records[i])); err != nil {
			return counter.n, err
		}
	}

	cw.Flush()
	return counter.n, cw.Error()
}

// headerRow returns the CSV header for the given layout.
func (w *CSVWriter) headerRow(layout model.Layout) []string {
	var header []string
	if layout == model.LayoutExtended {
		header = []string{"case", "heel_deg", "trim_deg", "required_area_ratio", "actual_area_ratio", "remark"}
	} else {
		header = []string{"case", "gm_m"}
	}
	for _, station := range model.DraftStations() {
		header = append(header, station)
	}
	return header
}

// recordRow returns the CSV row for one record under the given layout.
func (w *CSVWriter) recordRow(layout model.Layout, record *model.CaseRecord) []string {
	var row []string
	if layout == model.LayoutExtended {
		row = []string{
			record.CaseID,
			formatMeters(record.Heel),
			formatMeters(record.Trim),
			formatMeters(record.RequiredAreaRatio),
			formatMeters(record.ActualAreaRatio),
			record.Remark,
		}
	} else {
		row = []string{record.CaseID, formatMeters(record.GM)}
	}
	for _, station := range model.DraftStations() {
		row = append(row, formatDraft(record, station))
	}
	return row
}

// countingWriter counts bytes passed through to the underlying writer.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
