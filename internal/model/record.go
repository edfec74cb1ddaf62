package model

import (
	"sort"
	"strconv"
)

// CaseIntact is the case identifier used for the undamaged (intact tow)
// condition. MOSES spells it several ways across layouts ("INTACT TOW
// CONDITION", "Damage = NONE"); we normalize all of them to this sentinel
// so sorting and comparison have a single spelling to work with.
const CaseIntact = "Intact"

// Draft mark station tags as they appear in MOSES draft mark readings.
// P is the port reading, S the starboard reading.
const (
	DraftAftPort = "AFT(P)"
	DraftAftStbd = "AFT(S)"
	DraftFwdPort = "FWD(P)"
	DraftFwdStbd = "FWD(S)"
)

// DraftStations returns the four reported draft mark stations in their
// conventional column order. The MEAN(P)/MEAN(S) pairs MOSES prints on the
// same line are derived values and are never part of a record.
func DraftStations() []string {
	return []string{DraftAftPort, DraftAftStbd, DraftFwdPort, DraftFwdStbd}
}

// RemarkPass is the remark attached to every record that survives the
// extended-layout join. Cases that fail their criteria never produce a
// complete summary section, so a joined record is a passing one.
const RemarkPass = "Pass"

// CaseRecord holds the extracted results for one damage case.
//
// A record is only complete once both its draft mark readings and its
// stability summary fields have been observed for the same case. Partially
// observed cases are dropped by the extractor, never emitted.
//
// GM is populated by the basic layout; Heel, Trim, the area ratios, and
// Remark are populated by the extended layout. The unused half stays at its
// zero value and is omitted from JSON output.
type CaseRecord struct {
	// CaseID identifies the damage scenario: a flooded compartment code
	// (e.g. "4P"), a numeric case id (e.g. "3"), or CaseIntact.
	CaseID string `json:"caseID"`

	// Drafts maps draft mark station tags (see DraftStations) to readings
	// in meters.
	Drafts map[string]float64 `json:"drafts"`

	// GM is the corrected metacentric height in meters (basic layout).
	GM float64 `json:"gm,omitempty"`

	// Heel is the static heel angle in degrees (extended layout).
	Heel float64 `json:"heel,omitempty"`

	// Trim is the static trim angle in degrees (extended layout).
	Trim float64 `json:"trim,omitempty"`

	// RequiredAreaRatio is the wind heeling area ratio the criteria demand
	// (extended layout).
	RequiredAreaRatio float64 `json:"requiredAreaRatio,omitempty"`

	// ActualAreaRatio is the achieved wind heeling area ratio
	// (extended layout).
	ActualAreaRatio float64 `json:"actualAreaRatio,omitempty"`

	// Remark is the pass/fail remark carried by extended-layout records.
	Remark string `json:"remark,omitempty"`
}

// Draft returns the reading for the given station tag and whether it was
// observed in the input.
func (r *CaseRecord) Draft(station string) (float64, bool) {
	v, ok := r.Drafts[station]
	return v, ok
}

// IsIntact reports whether the record describes the undamaged condition.
func (r *CaseRecord) IsIntact() bool {
	return r.CaseID == CaseIntact
}

// caseRank maps a case id onto a sortable (class, number, literal) triple.
// Class 0 is the intact sentinel, class 1 numeric ids, class 2 everything
// else. Non-numeric ids therefore sort after all numeric cases instead of
// interleaving with them.
func caseRank(id string) (int, int, string) {
	if id == CaseIntact {
		return 0, 0, ""
	}
	if n, err := strconv.Atoi(id); err == nil {
		return 1, n, ""
	}
	return 2, 0, id
}

// LessCaseID reports whether case id a orders before b: intact first, then
// ascending numeric case id, then remaining ids lexicographically.
func LessCaseID(a, b string) bool {
	ca, na, la := caseRank(a)
	cb, nb, lb := caseRank(b)
	if ca != cb {
		return ca < cb
	}
	if na != nb {
		return na < nb
	}
	return la < lb
}

// SortRecords orders records in place: intact condition first, then
// ascending numeric case id. The sort is stable so records with duplicate
// ids keep their source order.
func SortRecords(records []CaseRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return LessCaseID(records[i].CaseID, records[j].CaseID)
	})
}

// SortCaseIDs orders bare case ids in place using the same ordering as
// SortRecords.
func SortCaseIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return LessCaseID(ids[i], ids[j])
	})
}
