package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/seakeeper/stabex/internal/model"
)

// basicTestResult creates a basic-layout result with sample data.
func basicTestResult() *model.ExtractionResult {
	return &model.ExtractionResult{
		InputFile:   "out00001.txt",
		Layout:      model.LayoutBasic,
		ExtractedAt: time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC),
		SourceHash:  "deadbeef",
		Records: []model.CaseRecord{
			{
				CaseID: model.CaseIntact,
				GM:     2.10,
				Drafts: map[string]float64{
					"AFT(P)": 3.10, "AFT(S)": 3.12, "FWD(P)": 2.90, "FWD(S)": 2.92,
				},
			},
			{
				CaseID: "4P",
				GM:     1.85,
				Drafts: map[string]float64{
					"AFT(P)": 1.23, "AFT(S)": 2.34, "FWD(P)": 3.45,
				},
			},
		},
	}
}

// extendedTestResult creates an extended-layout result with sample data.
func extendedTestResult() *model.ExtractionResult {
	return &model.ExtractionResult{
		InputFile:   "out00002.txt",
		Layout:      model.LayoutExtended,
		ExtractedAt: time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC),
		Records: []model.CaseRecord{
			{
				CaseID:            "1",
				Heel:              1.20,
				Trim:              0.30,
				RequiredAreaRatio: 1.40,
				ActualAreaRatio:   1.48,
				Remark:            model.RemarkPass,
				Drafts: map[string]float64{
					"AFT(P)": 1.23, "AFT(S)": 2.34, "FWD(P)": 3.45, "FWD(S)": 4.56,
				},
			},
		},
	}
}

// TestSimpleWriter tests the terminal preview writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header with run information", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(basicTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "MOSES STABILITY EXTRACTION") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "out00001.txt") {
			t.Error("expected output to contain input file name")
		}
		if !strings.Contains(output, "Cases:       2") {
			t.Error("expected output to contain case count")
		}
	})

	t.Run("basic layout rows carry gm and drafts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(basicTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "2.10") || !strings.Contains(output, "1.85") {
			t.Error("expected GM values in output")
		}
		if !strings.Contains(output, "N/A") {
			t.Error("expected missing FWD(S) station to print N/A")
		}
	})

	t.Run("extended layout rows carry angles ratios and remark", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(extendedTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"Heel", "Trim", "1.48", "Pass"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("verbose mode includes source hash", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(basicTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "deadbeef") {
			t.Error("expected verbose output to contain source hash")
		}
	})
}

// TestMarkdownWriter tests the rendered tabular report.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes title and run information table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(basicTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# MOSES Stability Extraction Report") {
			t.Error("expected markdown title")
		}
		if !strings.Contains(output, "`out00001.txt`") {
			t.Error("expected input file in run information table")
		}
	})

	t.Run("basic layout table has gm and station columns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(basicTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"GM (m)", "AFT(P) (m)", "FWD(S) (m)", "Intact", "4P"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("extended layout table has criteria columns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(extendedTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"Heel (deg)", "Req. Area Ratio", "Act. Area Ratio", "Remark", "Pass"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("empty result renders a note instead of a table", func(t *testing.T) {
		t.Parallel()

		result := basicTestResult()
		result.Records = nil

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "No complete case records") {
			t.Error("expected note for empty result")
		}
	})
}

// TestJSONWriter tests the JSON output format.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("output round-trips through json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(basicTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.ExtractionResult
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.InputFile != "out00001.txt" || len(decoded.Records) != 2 {
			t.Errorf("unexpected decoded result: %+v", decoded)
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(basicTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented JSON output")
		}
	})
}

// TestCSVWriter tests the CSV output format.
func TestCSVWriter(t *testing.T) {
	t.Parallel()

	t.Run("basic layout produces header plus one row per case", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf).Write(basicTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if rows[0][0] != "case" || rows[0][1] != "gm_m" {
			t.Errorf("unexpected header %v", rows[0])
		}
		if rows[1][0] != model.CaseIntact || rows[1][1] != "2.10" {
			t.Errorf("unexpected first data row %v", rows[1])
		}
	})

	t.Run("extended layout includes criteria columns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf).Write(extendedTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if rows[0][1] != "heel_deg" || rows[0][5] != "remark" {
			t.Errorf("unexpected header %v", rows[0])
		}
		if rows[1][5] != "Pass" {
			t.Errorf("unexpected remark column %v", rows[1])
		}
	})
}

// TestMultiWriter tests fan-out to multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var preview, rendered bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&preview), NewMarkdownWriter(&rendered))

	if _, err := mw.Write(basicTestResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if preview.Len() == 0 || rendered.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
	if !strings.Contains(rendered.String(), "# MOSES Stability Extraction Report") {
		t.Error("expected markdown output in second writer")
	}
}
