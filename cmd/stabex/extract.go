package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seakeeper/stabex/internal/config"
	"github.com/seakeeper/stabex/internal/database"
	"github.com/seakeeper/stabex/internal/extract"
	"github.com/seakeeper/stabex/internal/log"
	"github.com/seakeeper/stabex/internal/model"
	"github.com/seakeeper/stabex/internal/report"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <moses-output-file> [report-file]",
		Short: "Extract damage stability results from a MOSES output file",
		Long: `Extract parses a MOSES hydrostatic analysis output file and pulls out the
damage stability results for each case:

- Draft mark readings at the AFT(P), AFT(S), FWD(P), and FWD(S) stations
- GM evaluated against the stability criteria
- Heel and trim angles and wind heeling area ratios (extended layout)

A summary table is printed to stdout and a rendered report is written to
the optional second argument, or next to the input file when omitted.
Each run is also recorded in a local history database so runs can be
compared later with 'stabex compare'.

Examples:
  # Extract an output file, writing out00001_stability.md next to it
  stabex extract out00001.txt

  # Write the report to an explicit path
  stabex extract out00001.txt reports/hull-a.md

  # Force the basic layout instead of auto-detection
  stabex extract --layout basic out00001.txt

  # Write the structured result as JSON
  stabex extract --json out00001.txt

  # Use a custom configuration file
  stabex extract -c myconfig.yaml out00001.txt

Configuration file (.stabex) example:
  files:
    out00001.txt:
      layout: extended
      output: reports/hull-a.md
  defaults:
    format: markdown`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runExtractCmd,
	}

	// Extraction behavior flags
	cmd.Flags().StringP("layout", "l", string(config.DefaultLayout),
		"Report layout: auto, basic, or extended")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .stabex in current or home directory)")

	// Report flags
	cmd.Flags().String("format", string(config.FormatMarkdown),
		"Rendered report format: markdown, json, or csv")
	cmd.Flags().BoolP("json", "j", false,
		"Shorthand for --format json")
	cmd.Flags().Bool("csv", false,
		"Shorthand for --format csv")
	cmd.Flags().StringP("output", "o", "",
		"Write the rendered report to this path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the history database")

	return cmd
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Set up structured logging
	verbose := getVerboseFlag(cmd)
	cfg.Verbose = verbose
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runExtract(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and positional
// arguments. The first argument is the input file; an optional second one
// is the report output path.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	if len(args) > 0 {
		cfg.InputFile = args[0]
	}

	layout, err := cmd.Flags().GetString("layout")
	if err != nil {
		return nil, err
	}
	cfg.Layout, err = model.ParseLayout(layout)
	if err != nil {
		return nil, err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	cfg.Format = config.OutputFormat(format)

	// Shorthand flags override --format
	jsonFormat, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	if jsonFormat {
		cfg.Format = config.FormatJSON
	}
	csvFormat, err := cmd.Flags().GetBool("csv")
	if err != nil {
		return nil, err
	}
	if csvFormat {
		cfg.Format = config.FormatCSV
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	if len(args) > 1 {
		if cfg.OutputFile != "" {
			return nil, fmt.Errorf("output path given twice: --output %s and argument %s", cfg.OutputFile, args[1])
		}
		cfg.OutputFile = args[1]
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-input configurations from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.FileConfigs = &config.File{
			Files: make(map[string]config.FileConfig),
		}
	}

	return cfg, nil
}

// runExtract resolves per-input overrides and extracts the input file.
func runExtract(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting extraction",
		"input", cfg.InputFile,
		"layout", cfg.Layout,
		"format", cfg.Format,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	fileCfg := configForInput(cfg, cfg.InputFile)
	if err := fileCfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	return extractOne(ctx, fileCfg, db, logger)
}

// configForInput resolves the effective configuration for one input file,
// applying per-input overrides from the configuration file.
func configForInput(cfg *config.Config, input string) *config.Config {
	fileCfg := *cfg
	fileCfg.InputFile = input

	if cfg.FileConfigs == nil {
		return &fileCfg
	}

	override := cfg.FileConfigs.GetFileConfig(filepath.Base(input))
	if override.Layout != "" && fileCfg.Layout == config.DefaultLayout {
		if layout, err := model.ParseLayout(override.Layout); err == nil {
			fileCfg.Layout = layout
		}
	}
	if override.Format != "" && fileCfg.Format == config.FormatMarkdown {
		fileCfg.Format = config.OutputFormat(override.Format)
	}
	if override.Output != "" && fileCfg.OutputFile == "" {
		fileCfg.OutputFile = override.Output
	}

	return &fileCfg
}

// extractOne extracts a single input file, prints the summary, writes the
// rendered report, and records the run in the history database.
func extractOne(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	extractor := extract.New(
		extract.WithLayout(cfg.Layout),
		extract.WithLogger(logger),
	)

	fmt.Printf("Extracting %s...\n", cfg.InputFile)
	startTime := time.Now()

	result, err := extractor.ExtractFile(cfg.InputFile)
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Extraction completed in %s\n\n", elapsed.Round(time.Millisecond))

	if len(result.Records) == 0 {
		fmt.Fprintf(os.Stderr, "No stability data found in %s.\n", cfg.InputFile)
		fmt.Fprintln(os.Stderr, "Check that the file is a MOSES output containing draft mark")
		fmt.Fprintln(os.Stderr, "readings and stability summary sections, or force a layout")
		fmt.Fprintln(os.Stderr, "with --layout basic or --layout extended.")
		return fmt.Errorf("no case records extracted from %s", cfg.InputFile)
	}

	// Console summary
	writer := report.NewSimpleWriter(os.Stdout, report.WithVerbose(cfg.Verbose))
	if _, err := writer.Write(result); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}

	// Rendered report file
	outputPath := cfg.ResolveOutputFile()
	if err := writeReportFile(cfg, outputPath, result); err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n\n", outputPath)

	// Save to database if enabled
	if err := saveExtraction(ctx, db, result, logger); err != nil {
		logger.Error("failed to save extraction", "input", cfg.InputFile, "error", err)
	}

	return nil
}

// writeReportFile writes the rendered report in the configured format.
func writeReportFile(cfg *config.Config, outputPath string, result *model.ExtractionResult) error {
	// Create directories if they don't exist
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Derived from user-provided path
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	var writer report.Writer
	switch cfg.Format {
	case config.FormatJSON:
		writer = report.NewJSONWriter(f, report.WithPrettyPrint())
	case config.FormatCSV:
		writer = report.NewCSVWriter(f)
	default:
		writer = report.NewMarkdownWriter(f)
	}

	if _, err := writer.Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// saveExtraction records the extraction run in the database if enabled.
// If db is nil, this function is a no-op.
func saveExtraction(ctx context.Context, db *database.HistoryDB, result *model.ExtractionResult, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveExtraction(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save extraction run: %w", err)
	}

	logger.Info("extraction run saved to database", "input", result.InputFile, "runID", id)
	return nil
}
