package extract

import (
	"maps"
	"strings"

	"github.com/seakeeper/stabex/internal/model"
)

// extractBasic scans text under the basic damage stability layout.
// Records are emitted in source order, one per stability summary whose GM
// line is parsed while both a case id and draft readings are pending.
//
// Known legacy quirk: the finalized record takes whatever draft readings
// were parsed most recently, with no check that they belong to the current
// case. If two draft marks sections appear before one stability summary,
// the later readings win. The extended layout's keyed join does not have
// this problem; here we preserve the historical behavior.
func (e *Extractor) extractBasic(text string) []model.CaseRecord {
	var (
		records       []model.CaseRecord
		scope         caseScope
		state         = stateIdle
		currentDrafts map[string]float64
	)

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)

		// Case headers are recognized everywhere, not just in idle state:
		// MOSES prints them between sections as well as inside page headers.
		scope.observeCaseHeader(line, model.LayoutBasic)

		switch {
		case strings.Contains(line, draftMarksBanner):
			state = stateDraftMarks
			currentDrafts = nil
			continue
		case strings.Contains(line, stabilitySummaryBanner):
			state = stateStabilitySummary
			continue
		}

		switch state {
		case stateDraftMarks:
			drafts, ok := parseDraftLine(line)
			if !ok {
				continue
			}
			currentDrafts = drafts
			state = stateIdle

		case stateStabilitySummary:
			gm, ok := parseGMCriteria(line)
			if !ok {
				continue
			}
			if scope.haveCase && len(currentDrafts) > 0 {
				record := model.CaseRecord{
					CaseID: scope.currentCase,
					GM:     gm,
					Drafts: maps.Clone(currentDrafts),
				}
				records = append(records, record)
			} else {
				e.logger.Debug("dropping GM value without correlated case data",
					"caseID", scope.currentCase,
					"haveCase", scope.haveCase,
					"draftCount", len(currentDrafts),
				)
			}
			// The section closes once its criteria line is parsed, whether
			// or not a record was produced.
			state = stateIdle
		}
	}

	return records
}
