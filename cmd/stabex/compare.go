package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seakeeper/stabex/internal/config"
	"github.com/seakeeper/stabex/internal/database"
	"github.com/seakeeper/stabex/internal/model"
)

// Constants for stability trend direction.
const (
	trendImproved  = "improved"
	trendWorsened  = "worsened"
	trendUnchanged = "unchanged"
)

// gmEpsilon is the smallest GM or draft difference reported as a change.
// MOSES prints meters to two decimals, so anything below half a centimeter
// is noise.
const gmEpsilon = 0.005

// ratioEpsilon is the smallest area ratio difference reported as a change.
// Ratios are printed to two decimals as well.
const ratioEpsilon = 0.005

// NewCompareCmd creates the compare command.
// This command compares extraction runs recorded in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [moses-output-file]",
		Short: "Compare extraction runs recorded in the history database",
		Long: `Compare displays differences between the current and previous extraction
runs for a MOSES output file.

This command retrieves historical runs from the database and shows:
- Cases that appeared or disappeared since the previous run
- GM, draft, and wind heeling area ratio changes per case
- The overall stability trend

The comparison requires at least two recorded runs for the specified
input file. Use 'stabex extract' to record runs.

Examples:
  # Compare the latest two runs for a file
  stabex compare out00001.txt

  # List all recorded runs for a file
  stabex compare --list out00001.txt

  # Compare with a specific historical run by ID
  stabex compare --with-run-id 5 out00001.txt

  # Compare with the first run since a specific date
  stabex compare --since "2026-01-01" out00001.txt

  # Output comparison in JSON format
  stabex compare --json out00001.txt

  # List all input files in the database
  stabex compare --list-inputs`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List run history for the specified input file")
	cmd.Flags().BoolP("list-inputs", "L", false,
		"List all input files in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first run after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-inputs flag first (requires database but no input file)
	listInputs, err := cmd.Flags().GetBool("list-inputs")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-inputs)
	var inputFile string
	if !listInputs {
		if len(args) == 0 {
			return errors.New("input file is required (use --list-inputs to see recorded files)")
		}
		inputFile = filepath.Base(args[0])
	}

	// Use XDG data directory for database
	dbDir := config.XDGDataDir()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listInputs {
		return listRecordedInputs(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, db, inputFile)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	// Get comparison target flags
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, inputFile, withRunID, sinceDate, jsonOutput, markdownOutput)
}

// listRecordedInputs lists all input files with runs in the database.
func listRecordedInputs(ctx context.Context, db *database.HistoryDB) error {
	inputs, err := db.ListInputs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list inputs: %w", err)
	}

	if len(inputs) == 0 {
		fmt.Println("No extraction runs found in the database.")
		fmt.Println("\nUse 'stabex extract <file>' to extract a MOSES output file.")
		return nil
	}

	fmt.Printf("Recorded input files (%d):\n\n", len(inputs))
	for _, input := range inputs {
		fmt.Printf("  • %s\n", input)
	}
	fmt.Println("\nUse 'stabex compare --list <file>' to see run history for a file.")

	return nil
}

// listRunHistory lists all recorded runs for a specific input file.
func listRunHistory(ctx context.Context, db *database.HistoryDB, inputFile string) error {
	runs, err := db.GetRunHistory(ctx, inputFile)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No run history found for %s\n", inputFile)
		fmt.Println("\nUse 'stabex extract' to extract this file.")
		return nil
	}

	fmt.Printf("Run history for %s (%d runs):\n\n", inputFile, len(runs))
	fmt.Printf("  %-6s  %-20s  %-10s  %-6s  %s\n", "ID", "Date", "Layout", "Cases", "Source Hash")
	fmt.Println("  " + strings.Repeat("-", 70))

	for _, meta := range runs {
		hash := meta.SourceHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Printf("  %-6d  %-20s  %-10s  %-6d  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Layout,
			meta.RecordCount,
			hash,
		)
	}

	fmt.Println("\nUse 'stabex compare <file>' to compare the latest two runs.")
	fmt.Println("Use 'stabex compare --with-run-id <id> <file>' to compare with a specific run.")

	return nil
}

// runComparison performs the actual comparison between extraction runs.
func runComparison(ctx context.Context, db *database.HistoryDB, inputFile string, withRunID int64, sinceDate string, jsonOutput, markdownOutput bool) error {
	runs, err := db.GetExtractionHistory(ctx, inputFile)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		return fmt.Errorf("no run history found for %s", inputFile)
	}

	if len(runs) < 2 && withRunID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
	}

	// Latest run is always the current one
	var currentRun, previousRun *model.ExtractionResult
	currentRun = runs[0]

	if withRunID > 0 {
		previousRun, err = db.GetExtractionByID(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to get run with ID %d: %w", withRunID, err)
		}
		if previousRun == nil {
			return fmt.Errorf("run with ID %d not found", withRunID)
		}
		if filepath.Base(previousRun.InputFile) != inputFile {
			return fmt.Errorf("run ID %d belongs to %s, not %s", withRunID, filepath.Base(previousRun.InputFile), inputFile)
		}
	} else if sinceDate != "" {
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// Runs are sorted newest first, so iterate in reverse to find the
		// oldest run at or after the date
		for i := len(runs) - 1; i >= 0; i-- {
			r := runs[i]
			if r.ExtractedAt.After(parsedDate) || r.ExtractedAt.Equal(parsedDate) {
				previousRun = r
				break
			}
		}
		if previousRun == nil {
			return fmt.Errorf("no runs found since %s", sinceDate)
		}
		if previousRun == currentRun {
			return fmt.Errorf("only one run found since %s; at least 2 runs are required for comparison", sinceDate)
		}
	} else {
		// Default: compare with the run immediately before the latest one
		latestID, err := db.LatestRunID(ctx, inputFile)
		if err != nil {
			return fmt.Errorf("failed to get latest run id: %w", err)
		}
		previousRun, err = db.GetPreviousExtraction(ctx, inputFile, latestID)
		if err != nil {
			return fmt.Errorf("failed to get previous run: %w", err)
		}
		if previousRun == nil {
			return fmt.Errorf("no earlier run found for %s", inputFile)
		}
	}

	comparison := compareRuns(previousRun, currentRun)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two extraction runs.
type ComparisonResult struct {
	// InputFile is the base name of the compared input file.
	InputFile string `json:"input_file"`

	// PreviousRun contains metadata about the previous run.
	PreviousRun RunInfo `json:"previous_run"`

	// CurrentRun contains metadata about the current run.
	CurrentRun RunInfo `json:"current_run"`

	// NewCases contains case IDs present only in the current run.
	NewCases []string `json:"new_cases,omitempty"`

	// RemovedCases contains case IDs present only in the previous run.
	RemovedCases []string `json:"removed_cases,omitempty"`

	// GMChanges contains per-case GM differences above the noise floor.
	GMChanges []GMChange `json:"gm_changes,omitempty"`

	// DraftChanges contains per-station draft differences above the
	// noise floor.
	DraftChanges []DraftChange `json:"draft_changes,omitempty"`

	// AreaRatioChanges contains per-case wind heeling area ratio
	// differences above the noise floor (extended layout).
	AreaRatioChanges []AreaRatioChange `json:"area_ratio_changes,omitempty"`

	// UnchangedCount is the number of cases with no reportable change.
	UnchangedCount int `json:"unchanged_count"`

	// Trend describes the overall change in stability margin.
	Trend StabilityTrend `json:"trend"`
}

// RunInfo contains metadata about a run for comparison display.
type RunInfo struct {
	// ExtractedAt is when the run was performed.
	ExtractedAt time.Time `json:"extracted_at"`

	// Layout is the report layout the run was extracted under.
	Layout model.Layout `json:"layout"`

	// CaseCount is the number of case records in the run.
	CaseCount int `json:"case_count"`

	// MinGM is the smallest GM across all cases in the run, in meters.
	// Always zero for extended-layout runs, which report area ratios
	// instead of GM.
	MinGM float64 `json:"min_gm_m"`

	// MinAreaRatio is the smallest actual wind heeling area ratio across
	// all cases in the run. Always zero for basic-layout runs.
	MinAreaRatio float64 `json:"min_area_ratio,omitempty"`
}

// GMChange describes a per-case GM difference between two runs.
type GMChange struct {
	// CaseID identifies the damage case.
	CaseID string `json:"case_id"`

	// Previous is the GM in the previous run, in meters.
	Previous float64 `json:"previous_m"`

	// Current is the GM in the current run, in meters.
	Current float64 `json:"current_m"`

	// Delta is Current minus Previous, in meters.
	Delta float64 `json:"delta_m"`
}

// DraftChange describes a per-station draft difference between two runs.
type DraftChange struct {
	// CaseID identifies the damage case.
	CaseID string `json:"case_id"`

	// Station is the draft mark station tag, e.g. "AFT(P)".
	Station string `json:"station"`

	// Previous is the reading in the previous run, in meters.
	Previous float64 `json:"previous_m"`

	// Current is the reading in the current run, in meters.
	Current float64 `json:"current_m"`

	// Delta is Current minus Previous, in meters.
	Delta float64 `json:"delta_m"`
}

// AreaRatioChange describes a per-case actual wind heeling area ratio
// difference between two extended-layout runs.
type AreaRatioChange struct {
	// CaseID identifies the damage case.
	CaseID string `json:"case_id"`

	// Previous is the actual area ratio in the previous run.
	Previous float64 `json:"previous"`

	// Current is the actual area ratio in the current run.
	Current float64 `json:"current"`

	// Delta is Current minus Previous.
	Delta float64 `json:"delta"`
}

// StabilityTrend describes the change in stability margin between runs.
// Basic-layout runs are judged on worst-case GM; extended-layout runs on
// the worst-case actual area ratio, since extended records carry no GM.
type StabilityTrend struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// MinGMDelta is the change in the worst-case GM, in meters.
	MinGMDelta float64 `json:"min_gm_delta_m"`

	// MinAreaRatioDelta is the change in the worst-case actual area
	// ratio (extended layout).
	MinAreaRatioDelta float64 `json:"min_area_ratio_delta,omitempty"`
}

// compareRuns compares two extraction runs and generates a comparison result.
func compareRuns(previous, current *model.ExtractionResult) *ComparisonResult {
	result := &ComparisonResult{
		InputFile:   filepath.Base(current.InputFile),
		PreviousRun: runInfo(previous),
		CurrentRun:  runInfo(current),
	}

	previousCases := make(map[string]model.CaseRecord)
	currentCases := make(map[string]model.CaseRecord)
	for _, rec := range previous.Records {
		previousCases[rec.CaseID] = rec
	}
	for _, rec := range current.Records {
		currentCases[rec.CaseID] = rec
	}

	extended := current.Layout == model.LayoutExtended || previous.Layout == model.LayoutExtended

	// Walk the sorted current records so output order is stable
	for _, rec := range current.Records {
		prev, exists := previousCases[rec.CaseID]
		if !exists {
			result.NewCases = append(result.NewCases, rec.CaseID)
			continue
		}

		changed := false

		if delta := rec.GM - prev.GM; math.Abs(delta) >= gmEpsilon {
			result.GMChanges = append(result.GMChanges, GMChange{
				CaseID:   rec.CaseID,
				Previous: prev.GM,
				Current:  rec.GM,
				Delta:    delta,
			})
			changed = true
		}

		for _, station := range model.DraftStations() {
			cur, haveCur := rec.Draft(station)
			old, haveOld := prev.Draft(station)
			if !haveCur && !haveOld {
				continue
			}
			if delta := cur - old; math.Abs(delta) >= gmEpsilon || haveCur != haveOld {
				result.DraftChanges = append(result.DraftChanges, DraftChange{
					CaseID:   rec.CaseID,
					Station:  station,
					Previous: old,
					Current:  cur,
					Delta:    delta,
				})
				changed = true
			}
		}

		if extended {
			if delta := rec.ActualAreaRatio - prev.ActualAreaRatio; math.Abs(delta) >= ratioEpsilon {
				result.AreaRatioChanges = append(result.AreaRatioChanges, AreaRatioChange{
					CaseID:   rec.CaseID,
					Previous: prev.ActualAreaRatio,
					Current:  rec.ActualAreaRatio,
					Delta:    delta,
				})
				changed = true
			}
		}

		if !changed {
			result.UnchangedCount++
		}
	}

	for _, rec := range previous.Records {
		if _, exists := currentCases[rec.CaseID]; !exists {
			result.RemovedCases = append(result.RemovedCases, rec.CaseID)
		}
	}
	model.SortCaseIDs(result.RemovedCases)

	result.Trend = calculateTrend(result.PreviousRun, result.CurrentRun, extended)

	return result
}

// runInfo extracts display metadata from a run.
func runInfo(result *model.ExtractionResult) RunInfo {
	info := RunInfo{
		ExtractedAt: result.ExtractedAt,
		Layout:      result.Layout,
		CaseCount:   len(result.Records),
	}
	for i, rec := range result.Records {
		if i == 0 || rec.GM < info.MinGM {
			info.MinGM = rec.GM
		}
		if i == 0 || rec.ActualAreaRatio < info.MinAreaRatio {
			info.MinAreaRatio = rec.ActualAreaRatio
		}
	}
	return info
}

// calculateTrend determines the stability trend from the worst damage case.
// A vessel is only as stable as its worst case, so the minimum margin
// across cases drives the direction: GM for basic-layout runs, the actual
// area ratio for extended ones.
func calculateTrend(previous, current RunInfo, extended bool) StabilityTrend {
	trend := StabilityTrend{
		MinGMDelta:        current.MinGM - previous.MinGM,
		MinAreaRatioDelta: current.MinAreaRatio - previous.MinAreaRatio,
	}

	driver, eps := trend.MinGMDelta, gmEpsilon
	if extended {
		driver, eps = trend.MinAreaRatioDelta, ratioEpsilon
	}

	switch {
	case driver > eps:
		trend.Direction = trendImproved
	case driver < -eps:
		trend.Direction = trendWorsened
	default:
		trend.Direction = trendUnchanged
	}

	return trend
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *ComparisonResult) error {
	fmt.Printf("# Run Comparison: %s\n\n", result.InputFile)

	fmt.Println("## Summary")
	fmt.Printf("\n**Stability Trend:** %s\n\n", formatTrendDirection(result.Trend.Direction))

	fmt.Println("| Metric | Previous | Current | Change |")
	fmt.Println("|--------|----------|---------|--------|")
	fmt.Printf("| Date | %s | %s | - |\n",
		result.PreviousRun.ExtractedAt.Format("2006-01-02 15:04"),
		result.CurrentRun.ExtractedAt.Format("2006-01-02 15:04"))
	fmt.Printf("| Cases | %d | %d | %s |\n",
		result.PreviousRun.CaseCount,
		result.CurrentRun.CaseCount,
		formatDelta(result.CurrentRun.CaseCount-result.PreviousRun.CaseCount))
	if result.CurrentRun.Layout == model.LayoutExtended {
		fmt.Printf("| Min Area Ratio | %.2f | %.2f | %s |\n",
			result.PreviousRun.MinAreaRatio,
			result.CurrentRun.MinAreaRatio,
			formatGMDelta(result.Trend.MinAreaRatioDelta))
	} else {
		fmt.Printf("| Min GM (m) | %.2f | %.2f | %s |\n",
			result.PreviousRun.MinGM,
			result.CurrentRun.MinGM,
			formatGMDelta(result.Trend.MinGMDelta))
	}

	if len(result.GMChanges) > 0 {
		fmt.Printf("\n## GM Changes (%d)\n\n", len(result.GMChanges))
		fmt.Println("| Case | Previous (m) | Current (m) | Delta (m) |")
		fmt.Println("|------|--------------|-------------|-----------|")
		for _, c := range result.GMChanges {
			fmt.Printf("| %s | %.2f | %.2f | %s |\n",
				c.CaseID, c.Previous, c.Current, formatGMDelta(c.Delta))
		}
	}

	if len(result.AreaRatioChanges) > 0 {
		fmt.Printf("\n## Area Ratio Changes (%d)\n\n", len(result.AreaRatioChanges))
		fmt.Println("| Case | Previous | Current | Delta |")
		fmt.Println("|------|----------|---------|-------|")
		for _, c := range result.AreaRatioChanges {
			fmt.Printf("| %s | %.2f | %.2f | %s |\n",
				c.CaseID, c.Previous, c.Current, formatGMDelta(c.Delta))
		}
	}

	if len(result.DraftChanges) > 0 {
		fmt.Printf("\n## Draft Changes (%d)\n\n", len(result.DraftChanges))
		fmt.Println("| Case | Station | Previous (m) | Current (m) | Delta (m) |")
		fmt.Println("|------|---------|--------------|-------------|-----------|")
		for _, c := range result.DraftChanges {
			fmt.Printf("| %s | %s | %.2f | %.2f | %s |\n",
				c.CaseID, c.Station, c.Previous, c.Current, formatGMDelta(c.Delta))
		}
	}

	if len(result.NewCases) > 0 {
		fmt.Printf("\n## New Cases (%d)\n\n", len(result.NewCases))
		for _, id := range result.NewCases {
			fmt.Printf("- %s\n", id)
		}
	}

	if len(result.RemovedCases) > 0 {
		fmt.Printf("\n## Removed Cases (%d)\n\n", len(result.RemovedCases))
		for _, id := range result.RemovedCases {
			fmt.Printf("- ~~%s~~\n", id)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\n---\n\n*%d cases unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Run Comparison: %s\n", result.InputFile)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nStability Trend: %s\n", formatTrendDirection(result.Trend.Direction))

	fmt.Printf("\nPrevious run: %s  (%d cases, %s layout)\n",
		result.PreviousRun.ExtractedAt.Format("2006-01-02 15:04:05"),
		result.PreviousRun.CaseCount,
		result.PreviousRun.Layout)
	fmt.Printf("Current run:  %s  (%d cases, %s layout)\n",
		result.CurrentRun.ExtractedAt.Format("2006-01-02 15:04:05"),
		result.CurrentRun.CaseCount,
		result.CurrentRun.Layout)

	if result.CurrentRun.Layout == model.LayoutExtended {
		fmt.Println("\nWorst-case area ratio:")
		fmt.Printf("  %-10s  %-10s  %-10s\n", "Previous", "Current", "Change")
		fmt.Println("  " + strings.Repeat("-", 34))
		fmt.Printf("  %-10.2f  %-10.2f  %-10s\n",
			result.PreviousRun.MinAreaRatio, result.CurrentRun.MinAreaRatio,
			formatGMDelta(result.Trend.MinAreaRatioDelta))
	} else {
		fmt.Println("\nWorst-case GM:")
		fmt.Printf("  %-10s  %-10s  %-10s\n", "Previous", "Current", "Change")
		fmt.Println("  " + strings.Repeat("-", 34))
		fmt.Printf("  %-10.2f  %-10.2f  %-10s\n",
			result.PreviousRun.MinGM, result.CurrentRun.MinGM,
			formatGMDelta(result.Trend.MinGMDelta))
	}

	if len(result.GMChanges) > 0 {
		fmt.Printf("\nGM Changes (%d):\n", len(result.GMChanges))
		fmt.Printf("  %-10s  %-12s  %-12s  %-10s\n", "Case", "Previous (m)", "Current (m)", "Delta (m)")
		fmt.Println("  " + strings.Repeat("-", 50))
		for _, c := range result.GMChanges {
			fmt.Printf("  %-10s  %-12.2f  %-12.2f  %-10s\n",
				c.CaseID, c.Previous, c.Current, formatGMDelta(c.Delta))
		}
	}

	if len(result.AreaRatioChanges) > 0 {
		fmt.Printf("\nArea Ratio Changes (%d):\n", len(result.AreaRatioChanges))
		fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Case", "Previous", "Current", "Delta")
		fmt.Println("  " + strings.Repeat("-", 46))
		for _, c := range result.AreaRatioChanges {
			fmt.Printf("  %-10s  %-10.2f  %-10.2f  %-10s\n",
				c.CaseID, c.Previous, c.Current, formatGMDelta(c.Delta))
		}
	}

	if len(result.DraftChanges) > 0 {
		fmt.Printf("\nDraft Changes (%d):\n", len(result.DraftChanges))
		fmt.Printf("  %-10s  %-8s  %-12s  %-12s  %-10s\n", "Case", "Station", "Previous (m)", "Current (m)", "Delta (m)")
		fmt.Println("  " + strings.Repeat("-", 60))
		for _, c := range result.DraftChanges {
			fmt.Printf("  %-10s  %-8s  %-12.2f  %-12.2f  %-10s\n",
				c.CaseID, c.Station, c.Previous, c.Current, formatGMDelta(c.Delta))
		}
	}

	if len(result.NewCases) > 0 {
		fmt.Printf("\nNew Cases (%d):\n", len(result.NewCases))
		for _, id := range result.NewCases {
			fmt.Printf("  [+] %s\n", id)
		}
	}

	if len(result.RemovedCases) > 0 {
		fmt.Printf("\nRemoved Cases (%d):\n", len(result.RemovedCases))
		for _, id := range result.RemovedCases {
			fmt.Printf("  [-] %s\n", id)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d cases\n", result.UnchangedCount)
	}

	return nil
}

// formatTrendDirection formats the stability trend direction for display.
func formatTrendDirection(direction string) string {
	switch direction {
	case trendImproved:
		return "IMPROVED (stability margin increased)"
	case trendWorsened:
		return "WORSENED (stability margin decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}

// formatGMDelta formats a two-decimal delta (GM, draft, or ratio) with
// sign for display.
func formatGMDelta(delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("+%.2f", delta)
	}
	return fmt.Sprintf("%.2f", delta)
}
