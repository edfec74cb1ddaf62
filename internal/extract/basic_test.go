package extract

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/seakeeper/stabex/internal/model"
)

// quietLogger discards scan diagnostics in tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const basicReport = `
                          MOSES DAMAGE STABILITY RUN

          *** INTACT TOW CONDITION ***

          +++ D R A F T   M A R K   R E A D I N G S +++

          AFT(P) 3.10 AFT(S) 3.12 FWD(P) 2.90 FWD(S) 2.92 MEAN(P) 3.00 MEAN(S) 3.02

          +++ S T A B I L I T Y   S U M M A R Y +++

          GM >= 0.15 M 2.10 Passes

          DAMAGE STABILITY Case-1 (Compartment 4P Flooded)

          +++ D R A F T   M A R K   R E A D I N G S +++

          AFT(P) 1.23 AFT(S) 2.34 FWD(P) 3.45 FWD(S) 4.56 MEAN(P) 1.78 MEAN(S) 3.50

          +++ S T A B I L I T Y   S U M M A R Y +++

          GM >= 0.15 M 1.85 Passes

          DAMAGE STABILITY Case-2 (Compartment 6S Flooded)

          +++ D R A F T   M A R K   R E A D I N G S +++

          AFT(P) 1.50 AFT(S) 1.52 FWD(P) 2.50 FWD(S) 2.52 MEAN(P) 2.00 MEAN(S) 2.02

          +++ S T A B I L I T Y   S U M M A R Y +++

          GM >= 0.15 M 1.62
`

// TestExtractBasic tests the basic layout scan end to end.
func TestExtractBasic(t *testing.T) {
	t.Parallel()

	extractor := New(WithLayout(model.LayoutBasic), WithLogger(quietLogger()))
	result, err := extractor.Extract("out00001.txt", basicReport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("emits records in source order", func(t *testing.T) {
		t.Parallel()
		want := []string{model.CaseIntact, "4P", "6S"}
		if got := result.CaseIDs(); !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, expected %v", got, want)
		}
	})

	t.Run("captures gm per case including optional passes suffix", func(t *testing.T) {
		t.Parallel()
		wantGM := map[string]float64{model.CaseIntact: 2.10, "4P": 1.85, "6S": 1.62}
		for id, gm := range wantGM {
			record := result.Record(id)
			if record == nil {
				t.Fatalf("missing record for case %s", id)
			}
			if record.GM != gm {
				t.Errorf("case %s: got GM %v, expected %v", id, record.GM, gm)
			}
		}
	})

	t.Run("attaches draft readings without mean stations", func(t *testing.T) {
		t.Parallel()
		record := result.Record("4P")
		if record == nil {
			t.Fatal("missing record for case 4P")
		}
		want := map[string]float64{
			"AFT(P)": 1.23,
			"AFT(S)": 2.34,
			"FWD(P)": 3.45,
			"FWD(S)": 4.56,
		}
		if !reflect.DeepEqual(record.Drafts, want) {
			t.Errorf("got %v, expected %v", record.Drafts, want)
		}
	})

	t.Run("extraction is idempotent", func(t *testing.T) {
		t.Parallel()
		again, err := extractor.Extract("out00001.txt", basicReport)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(result.Records, again.Records) {
			t.Error("expected identical records on re-extraction")
		}
	})
}

// TestExtractBasicPartialSections tests the silent-drop rules for
// incomplete case data.
func TestExtractBasicPartialSections(t *testing.T) {
	t.Parallel()

	extractor := New(WithLayout(model.LayoutBasic), WithLogger(quietLogger()))

	t.Run("gm before any case header produces no record", func(t *testing.T) {
		t.Parallel()
		text := `
+++ D R A F T   M A R K   R E A D I N G S +++
AFT(P) 1.00 AFT(S) 1.00 FWD(P) 1.00 FWD(S) 1.00
+++ S T A B I L I T Y   S U M M A R Y +++
GM >= 0.15 M 1.85 Passes
`
		result, err := extractor.Extract("in.txt", text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Records) != 0 {
			t.Errorf("expected no records, got %v", result.CaseIDs())
		}
	})

	t.Run("gm without draft readings produces no record", func(t *testing.T) {
		t.Parallel()
		text := `
DAMAGE STABILITY Case-1 (Compartment 4P Flooded)
+++ S T A B I L I T Y   S U M M A R Y +++
GM >= 0.15 M 1.85 Passes
`
		result, err := extractor.Extract("in.txt", text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Records) != 0 {
			t.Errorf("expected no records, got %v", result.CaseIDs())
		}
	})

	t.Run("draft section without stability summary produces no record", func(t *testing.T) {
		t.Parallel()
		text := `
DAMAGE STABILITY Case-1 (Compartment 4P Flooded)
+++ D R A F T   M A R K   R E A D I N G S +++
AFT(P) 1.00 AFT(S) 1.00 FWD(P) 1.00 FWD(S) 1.00
`
		result, err := extractor.Extract("in.txt", text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Records) != 0 {
			t.Errorf("expected no records, got %v", result.CaseIDs())
		}
	})

	t.Run("latest draft readings win when sections repeat", func(t *testing.T) {
		t.Parallel()
		// Legacy correlation quirk: two draft sections before a single
		// summary attribute the second section's readings to the record.
		text := `
DAMAGE STABILITY Case-1 (Compartment 4P Flooded)
+++ D R A F T   M A R K   R E A D I N G S +++
AFT(P) 1.00 AFT(S) 1.00 FWD(P) 1.00 FWD(S) 1.00
DAMAGE STABILITY Case-2 (Compartment 6S Flooded)
+++ D R A F T   M A R K   R E A D I N G S +++
AFT(P) 9.00 AFT(S) 9.00 FWD(P) 9.00 FWD(S) 9.00
+++ S T A B I L I T Y   S U M M A R Y +++
GM >= 0.15 M 1.85 Passes
`
		result, err := extractor.Extract("in.txt", text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Records) != 1 {
			t.Fatalf("expected one record, got %v", result.CaseIDs())
		}
		record := result.Records[0]
		if record.CaseID != "6S" {
			t.Errorf("got case %q, expected 6S", record.CaseID)
		}
		if record.Drafts["AFT(P)"] != 9.00 {
			t.Errorf("got AFT(P) %v, expected the later section's 9.00", record.Drafts["AFT(P)"])
		}
	})
}
