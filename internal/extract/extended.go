package extract

import (
	"sort"
	"strings"

	"github.com/seakeeper/stabex/internal/model"
)

// stabilityData accumulates the extended layout's stability summary fields
// for one case before the join.
type stabilityData struct {
	heel              float64
	trim              float64
	requiredAreaRatio float64
	actualAreaRatio   float64
}

// extractExtended scans text under the extended towing criteria layout.
//
// The scan builds two keyed tables, case id to draft readings and case id
// to stability data, then joins them. Only cases present in both tables
// produce records; the join order is intact condition first, then ascending
// numeric case id. Keeping the tables separate (rather than mutating one
// growing record) makes the drop-on-missing-pair behavior explicit.
func (e *Extractor) extractExtended(text string) []model.CaseRecord {
	var (
		scope           caseScope
		state           = stateIdle
		pending         stabilityData
		draftsByCase    = make(map[string]map[string]float64)
		stabilityByCase = make(map[string]stabilityData)
	)

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)

		scope.observeCaseHeader(line, model.LayoutExtended)

		switch {
		case strings.Contains(line, draftMarksBanner):
			state = stateDraftMarks
			continue
		case strings.Contains(line, stabilitySummaryBanner):
			state = stateStabilitySummary
			// Heel and trim restart at zero for every summary; cases whose
			// summary omits the angle lines report 0.0, not a stale value.
			pending = stabilityData{}
			continue
		}

		switch state {
		case stateDraftMarks:
			drafts, ok := parseDraftLine(line)
			if !ok {
				continue
			}
			if scope.haveCase {
				draftsByCase[scope.currentCase] = drafts
			} else {
				e.logger.Debug("dropping draft readings with no case in scope")
			}
			state = stateIdle

		case stateStabilitySummary:
			if v, ok := parseAngle(line, rollAnglePattern); ok {
				pending.heel = v
				continue
			}
			if v, ok := parseAngle(line, pitchAnglePattern); ok {
				pending.trim = v
				continue
			}
			required, actual, ok := parseAreaRatio(line)
			if !ok {
				continue
			}
			if scope.haveCase {
				pending.requiredAreaRatio = required
				pending.actualAreaRatio = actual
				stabilityByCase[scope.currentCase] = pending
			} else {
				e.logger.Debug("dropping stability summary with no case in scope")
			}
			state = stateIdle
		}
	}

	return e.joinExtended(draftsByCase, stabilityByCase)
}

// joinExtended joins the two scan tables by case id and orders the result.
func (e *Extractor) joinExtended(draftsByCase map[string]map[string]float64, stabilityByCase map[string]stabilityData) []model.CaseRecord {
	keys := make([]string, 0, len(stabilityByCase))
	for id := range stabilityByCase {
		if _, ok := draftsByCase[id]; ok {
			keys = append(keys, id)
		} else {
			e.logger.Debug("dropping case missing draft readings", "caseID", id)
		}
	}
	for id := range draftsByCase {
		if _, ok := stabilityByCase[id]; !ok {
			e.logger.Debug("dropping case missing stability summary", "caseID", id)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		return model.LessCaseID(keys[i], keys[j])
	})

	records := make([]model.CaseRecord, 0, len(keys))
	for _, id := range keys {
		sd := stabilityByCase[id]
		records = append(records, model.CaseRecord{
			CaseID:            id,
			Drafts:            draftsByCase[id],
			Heel:              sd.heel,
			Trim:              sd.trim,
			RequiredAreaRatio: sd.requiredAreaRatio,
			ActualAreaRatio:   sd.actualAreaRatio,
			Remark:            model.RemarkPass,
		})
	}
	return records
}
