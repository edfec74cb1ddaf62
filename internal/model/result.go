package model

import (
	"fmt"
	"time"
)

// Layout identifies which of the two documented MOSES report layouts an
// input file follows.
type Layout string

const (
	// LayoutBasic is the damage stability layout: compartment-coded case
	// headers with a GM criteria line per stability summary.
	LayoutBasic Layout = "basic"

	// LayoutExtended is the towing criteria layout: numeric case ids with
	// heel/trim angles and wind heeling area ratios, joined across the
	// file in a second pass.
	LayoutExtended Layout = "extended"

	// LayoutAuto asks the extractor to detect the layout from the file
	// content before scanning.
	LayoutAuto Layout = "auto"
)

// ParseLayout converts a user-supplied layout name into a Layout.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutBasic, LayoutExtended, LayoutAuto:
		return Layout(s), nil
	default:
		return "", fmt.Errorf("unknown layout %q (expected basic, extended, or auto)", s)
	}
}

// ExtractionResult is one extraction run over one input file.
type ExtractionResult struct {
	// InputFile is the path of the MOSES output file that was scanned.
	InputFile string `json:"inputFile"`

	// Layout is the report layout the records were extracted under. Never
	// LayoutAuto: auto-detection resolves before extraction.
	Layout Layout `json:"layout"`

	// ExtractedAt is when the extraction ran.
	ExtractedAt time.Time `json:"extractedAt"`

	// SourceHash is the hex sha256 of the raw input bytes, recorded so
	// history comparisons can tell re-runs of the same file apart from
	// runs against revised output.
	SourceHash string `json:"sourceHash,omitempty"`

	// Records are the completed case records in their final order:
	// source order for the basic layout, sorted intact-first for the
	// extended layout.
	Records []CaseRecord `json:"records"`
}

// NewExtractionResult creates an ExtractionResult for the given input file
// with the extraction timestamp set to now.
func NewExtractionResult(inputFile string, layout Layout) *ExtractionResult {
	return &ExtractionResult{
		InputFile:   inputFile,
		Layout:      layout,
		ExtractedAt: time.Now(),
		Records:     []CaseRecord{},
	}
}

// Record returns the record for the given case id, or nil if the case was
// not extracted.
func (r *ExtractionResult) Record(caseID string) *CaseRecord {
	for i := range r.Records {
		if r.Records[i].CaseID == caseID {
			return &r.Records[i]
		}
	}
	return nil
}

// CaseIDs returns the extracted case ids in record order.
func (r *ExtractionResult) CaseIDs() []string {
	ids := make([]string, 0, len(r.Records))
	for i := range r.Records {
		ids = append(ids, r.Records[i].CaseID)
	}
	return ids
}
