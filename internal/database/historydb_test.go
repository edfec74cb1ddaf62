package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/seakeeper/stabex/internal/model"
)

func testResult(inputFile string, caseIDs ...string) *model.ExtractionResult {
	result := model.NewExtractionResult(inputFile, model.LayoutBasic)
	result.SourceHash = "deadbeef"
	for _, id := range caseIDs {
		result.Records = append(result.Records, model.CaseRecord{
			CaseID: id,
			GM:     2.5,
			Drafts: map[string]float64{
				model.DraftAftPort: 3.2,
			},
		})
	}
	return result
}

func openTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	hdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := hdb.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return hdb
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database when option set", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		hdb, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer hdb.Close()

		if hdb.dbPath != filepath.Join(dir, "stabex.db") {
			t.Errorf("unexpected database path: %s", hdb.dbPath)
		}
	})

	t.Run("fails when database missing and creation disabled", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing database, got nil")
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		hdb, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if err := hdb.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}

		hdb2, err := Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer hdb2.Close()
	})
}

func TestHistoryDBSaveAndGet(t *testing.T) {
	t.Parallel()

	t.Run("save and retrieve latest", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		ctx := context.Background()

		id, err := hdb.SaveExtraction(ctx, testResult("reports/vessel.txt", "Intact", "1"))
		if err != nil {
			t.Fatalf("failed to save extraction: %v", err)
		}
		if id == 0 {
			t.Error("expected non-zero run id")
		}

		got, err := hdb.GetLatestExtraction(ctx, "vessel.txt")
		if err != nil {
			t.Fatalf("failed to get latest extraction: %v", err)
		}
		if got == nil {
			t.Fatal("expected result, got nil")
		}
		if len(got.Records) != 2 {
			t.Errorf("expected 2 records, got %d", len(got.Records))
		}
		if got.SourceHash != "deadbeef" {
			t.Errorf("expected source hash deadbeef, got %s", got.SourceHash)
		}
	})

	t.Run("input keyed by base name", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		ctx := context.Background()

		if _, err := hdb.SaveExtraction(ctx, testResult("/some/deep/path/vessel.txt", "Intact")); err != nil {
			t.Fatalf("failed to save extraction: %v", err)
		}

		got, err := hdb.GetLatestExtraction(ctx, "/other/dir/vessel.txt")
		if err != nil {
			t.Fatalf("failed to get latest extraction: %v", err)
		}
		if got == nil {
			t.Fatal("expected result keyed by base name, got nil")
		}
	})

	t.Run("latest wins over earlier runs", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)
		ctx := context.Background()

		if _, err := hdb.SaveExtraction(ctx, testResult("vessel.txt", "Intact")); err != nil {
			t.Fatalf("failed to save first run: %v", err)
		}
		if _, err := hdb.SaveExtraction(ctx, testResult("vessel.txt", "Intact", "1", "2")); err != nil {
			t.Fatalf("failed to save second run: %v", err)
		}

		got, err := hdb.GetLatestExtraction(ctx, "vessel.txt")
		if err != nil {
			t.Fatalf("failed to get latest extraction: %v", err)
		}
		if len(got.Records) != 3 {
			t.Errorf("expected latest run with 3 records, got %d", len(got.Records))
		}
	})

	t.Run("returns nil for unknown input", func(t *testing.T) {
		t.Parallel()

		hdb := openTestDB(t)

		got, err := hdb.GetLatestExtraction(context.Background(), "missing.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Error("expected nil result for unknown input")
		}
	})
}

func TestHistoryDBGetPreviousExtraction(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	firstID, err := hdb.SaveExtraction(ctx, testResult("vessel.txt", "Intact"))
	if err != nil {
		t.Fatalf("failed to save first run: %v", err)
	}
	secondID, err := hdb.SaveExtraction(ctx, testResult("vessel.txt", "Intact", "1"))
	if err != nil {
		t.Fatalf("failed to save second run: %v", err)
	}

	prev, err := hdb.GetPreviousExtraction(ctx, "vessel.txt", secondID)
	if err != nil {
		t.Fatalf("failed to get previous extraction: %v", err)
	}
	if prev == nil {
		t.Fatal("expected previous run, got nil")
	}
	if len(prev.Records) != 1 {
		t.Errorf("expected previous run with 1 record, got %d", len(prev.Records))
	}

	none, err := hdb.GetPreviousExtraction(ctx, "vessel.txt", firstID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none != nil {
		t.Error("expected nil before the first run")
	}
}

func TestHistoryDBGetExtractionByID(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	id, err := hdb.SaveExtraction(ctx, testResult("vessel.txt", "Intact"))
	if err != nil {
		t.Fatalf("failed to save extraction: %v", err)
	}

	got, err := hdb.GetExtractionByID(ctx, id)
	if err != nil {
		t.Fatalf("failed to get extraction by id: %v", err)
	}
	if got == nil {
		t.Fatal("expected result, got nil")
	}

	missing, err := hdb.GetExtractionByID(ctx, id+100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestHistoryDBListInputs(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	for _, input := range []string{"bravo.txt", "alpha.txt", "bravo.txt"} {
		if _, err := hdb.SaveExtraction(ctx, testResult(input, "Intact")); err != nil {
			t.Fatalf("failed to save extraction: %v", err)
		}
	}

	inputs, err := hdb.ListInputs(ctx)
	if err != nil {
		t.Fatalf("failed to list inputs: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 distinct inputs, got %d", len(inputs))
	}
	if inputs[0] != "alpha.txt" || inputs[1] != "bravo.txt" {
		t.Errorf("expected sorted inputs, got %v", inputs)
	}
}

func TestHistoryDBGetRunHistory(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	if _, err := hdb.SaveExtraction(ctx, testResult("vessel.txt", "Intact")); err != nil {
		t.Fatalf("failed to save first run: %v", err)
	}
	if _, err := hdb.SaveExtraction(ctx, testResult("vessel.txt", "Intact", "1")); err != nil {
		t.Fatalf("failed to save second run: %v", err)
	}

	history, err := hdb.GetRunHistory(ctx, "vessel.txt")
	if err != nil {
		t.Fatalf("failed to get run history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(history))
	}
	if history[0].RecordCount != 2 {
		t.Errorf("expected newest run first with 2 records, got %d", history[0].RecordCount)
	}
	if history[0].Layout != model.LayoutBasic {
		t.Errorf("expected basic layout, got %s", history[0].Layout)
	}
	if history[0].SourceHash != "deadbeef" {
		t.Errorf("expected recorded source hash, got %s", history[0].SourceHash)
	}
}

func TestHistoryDBLatestRunID(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	id, err := hdb.LatestRunID(ctx, "vessel.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Errorf("expected 0 for unknown input, got %d", id)
	}

	saved, err := hdb.SaveExtraction(ctx, testResult("vessel.txt", "Intact"))
	if err != nil {
		t.Fatalf("failed to save extraction: %v", err)
	}

	id, err = hdb.LatestRunID(ctx, "vessel.txt")
	if err != nil {
		t.Fatalf("failed to get latest run id: %v", err)
	}
	if id != saved {
		t.Errorf("expected run id %d, got %d", saved, id)
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "sqlite default format",
			input: "2026-08-30 12:34:56",
			want:  time.Date(2026, 8, 30, 12, 34, 56, 0, time.UTC),
		},
		{
			name:  "iso8601 with z",
			input: "2026-08-30T12:34:56Z",
			want:  time.Date(2026, 8, 30, 12, 34, 56, 0, time.UTC),
		},
		{
			name:  "unparseable returns zero time",
			input: "not a timestamp",
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
