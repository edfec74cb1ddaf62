package extract

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/seakeeper/stabex/internal/model"
	"github.com/seakeeper/stabex/internal/textenc"
)

// Section banner lines as MOSES prints them. The letter-spaced spelling is
// literal output, not a formatting artifact.
const (
	draftMarksBanner       = "+++ D R A F T   M A R K   R E A D I N G S +++"
	stabilitySummaryBanner = "+++ S T A B I L I T Y   S U M M A R Y +++"
)

// scanState is the section context of the line scanner.
type scanState int

const (
	// stateIdle means no section is open; only case headers are recognized.
	stateIdle scanState = iota

	// stateDraftMarks is open between the draft marks banner and the
	// readings data line.
	stateDraftMarks

	// stateStabilitySummary is open between the stability summary banner
	// and the section's terminal criteria line.
	stateStabilitySummary
)

// Line patterns for the two documented layouts.
var (
	// damageCasePattern matches damage case section headers, e.g.
	// "DAMAGE STABILITY Case-3 (Compartment 4P Flooded)".
	damageCasePattern = regexp.MustCompile(`Case-(\d+)\s*\(Compartment\s+(\w+)\s+Flooded\)`)

	// damageDesignatorPattern matches explicit damage designators, e.g.
	// "Damage = 12S" on a condition line that also reports GM.
	damageDesignatorPattern = regexp.MustCompile(`Damage\s*=\s*(\w+)`)

	// leadingDigitsPattern captures the numeric prefix of a designator.
	leadingDigitsPattern = regexp.MustCompile(`^(\d+)`)

	// draftPairPattern matches station/value pairs on the draft readings
	// data line, e.g. "AFT(P)  1.23".
	draftPairPattern = regexp.MustCompile(`(\w+\([PS]\))\s+([\d.]+)`)

	// gmCriteriaPattern matches the GM criteria line of the basic layout,
	// e.g. "GM >= 0.15 M 1.85 Passes". The Passes suffix is optional:
	// some MOSES builds omit it on intact conditions.
	gmCriteriaPattern = regexp.MustCompile(`GM\s+>=\s+[\d.]+\s+M\s+([\d.]+)(?:\s+Passes)?`)

	// rollAnglePattern and pitchAnglePattern match the static angle lines
	// of the extended layout, e.g. "Roll 2.50 Deg".
	rollAnglePattern  = regexp.MustCompile(`Roll\s+(-?[\d.]+)\s+Deg`)
	pitchAnglePattern = regexp.MustCompile(`Pitch\s+(-?[\d.]+)\s+Deg`)

	// areaRatioPattern matches the wind heeling area ratio criteria line,
	// e.g. "Area Ratio >= 1.40 1.56 Passes". Required value first, then
	// actual. Only passing lines terminate the section.
	areaRatioPattern = regexp.MustCompile(`Area\s+Ratio\s+>=\s+([\d.]+)\s+([\d.]+)\s+Passes`)
)

// Extractor scans decoded MOSES output text and produces case records.
// The zero-value configuration auto-detects the layout and logs through
// the default slog logger; both can be overridden with options.
//
// An Extractor is stateless between calls: all scan state lives inside a
// single Extract invocation, so one Extractor may be reused across files.
type Extractor struct {
	layout model.Layout
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLayout fixes the report layout instead of auto-detecting it.
func WithLayout(layout model.Layout) Option {
	return func(e *Extractor) {
		e.layout = layout
	}
}

// WithLogger sets the logger used for scan diagnostics. Dropped partial
// cases are reported at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		layout: model.LayoutAuto,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ExtractFile reads, decodes, and scans the MOSES output file at path.
// A missing or undecodable file is an error; a readable file that yields
// no records is not (callers decide how to treat empty results).
func (e *Extractor) ExtractFile(path string) (*model.ExtractionResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	text, encName, err := textenc.Decode(data)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("input decoded", "path", path, "encoding", encName, "bytes", len(data))

	result, err := e.Extract(path, text)
	if err != nil {
		return nil, err
	}

	result.SourceHash = fmt.Sprintf("%x", sha256.Sum256(data))
	return result, nil
}

// Extract scans already-decoded report text. The inputFile argument is
// recorded in the result for reporting and history purposes only.
func (e *Extractor) Extract(inputFile, text string) (*model.ExtractionResult, error) {
	layout := e.layout
	if layout == model.LayoutAuto {
		layout = DetectLayout(text)
		e.logger.Debug("layout detected", "path", inputFile, "layout", layout)
	}

	result := model.NewExtractionResult(inputFile, layout)

	switch layout {
	case model.LayoutBasic:
		result.Records = e.extractBasic(text)
	case model.LayoutExtended:
		result.Records = e.extractExtended(text)
	default:
		return nil, fmt.Errorf("unsupported layout %q", layout)
	}

	e.logger.Debug("extraction complete",
		"path", inputFile,
		"layout", layout,
		"records", len(result.Records),
	)
	return result, nil
}

// DetectLayout inspects report text and picks the layout to scan it under.
// Wind heeling area ratio criteria only appear in the extended towing
// layout; everything else falls back to the basic damage stability layout.
func DetectLayout(text string) model.Layout {
	if strings.Contains(text, "Area Ratio") {
		return model.LayoutExtended
	}
	return model.LayoutBasic
}

// caseScope tracks the damage case currently in scope while scanning.
// haveCase distinguishes "no header seen yet" from any real case id.
type caseScope struct {
	currentCase string
	haveCase    bool
}

// observeCaseHeader updates the case scope if line is a recognized case
// header. Rules are tried in order and the first match wins; lines that
// match no rule leave the scope unchanged.
func (cs *caseScope) observeCaseHeader(line string, layout model.Layout) {
	switch {
	case strings.Contains(line, "DAMAGE STABILITY Case-"):
		m := damageCasePattern.FindStringSubmatch(line)
		if m == nil {
			return
		}
		// The basic layout keys records by the flooded compartment code,
		// the extended layout by the numeric case id.
		if layout == model.LayoutExtended {
			cs.currentCase = m[1]
		} else {
			cs.currentCase = m[2]
		}
		cs.haveCase = true

	case strings.Contains(line, "INTACT TOW CONDITION"), strings.Contains(line, "Damage = NONE"):
		cs.currentCase = model.CaseIntact
		cs.haveCase = true

	case strings.Contains(line, "Damage =") && strings.Contains(line, "GM"):
		m := damageDesignatorPattern.FindStringSubmatch(line)
		if m == nil || m[1] == "NONE" {
			return
		}
		d := leadingDigitsPattern.FindStringSubmatch(m[1])
		if d == nil {
			return
		}
		cs.currentCase = d[1]
		cs.haveCase = true
	}
}

// parseDraftLine parses the draft readings data line. It reports ok only
// for the data line itself (identified by carrying both aft stations); the
// returned map excludes the derived MEAN pairs and may be empty if no pair
// parses.
func parseDraftLine(line string) (map[string]float64, bool) {
	if !strings.Contains(line, model.DraftAftPort) || !strings.Contains(line, model.DraftAftStbd) {
		return nil, false
	}

	drafts := make(map[string]float64)
	for _, m := range draftPairPattern.FindAllStringSubmatch(line, -1) {
		name := m[1]
		if name == "MEAN(P)" || name == "MEAN(S)" {
			continue
		}
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		drafts[name] = v
	}
	return drafts, true
}

// parseGMCriteria parses the basic layout's GM criteria line, returning
// the actual (achieved) GM in meters.
func parseGMCriteria(line string) (float64, bool) {
	if !strings.Contains(line, "GM") || !strings.Contains(line, ">=") {
		return 0, false
	}
	m := gmCriteriaPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseAngle parses a static angle line (roll or pitch) in degrees.
func parseAngle(line string, pattern *regexp.Regexp) (float64, bool) {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseAreaRatio parses the wind heeling area ratio criteria line,
// returning the required and actual ratios.
func parseAreaRatio(line string) (required, actual float64, ok bool) {
	m := areaRatioPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	required, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	actual, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return required, actual, true
}
