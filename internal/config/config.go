package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/seakeeper/stabex/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "stabex"

	// DefaultLayout asks the extractor to detect the report layout from
	// the input content. Most users never need to override this; the
	// --layout flag exists for truncated files where detection has no
	// criteria line to key on.
	DefaultLayout = model.LayoutAuto

	// DefaultOutputSuffix is appended to the input file's base name when
	// no output path is given: out00001.txt -> out00001_stability.md.
	DefaultOutputSuffix = "_stability"
)

// OutputFormat selects the rendered report format written to the output file.
type OutputFormat string

const (
	// FormatMarkdown is the default rendered report format.
	FormatMarkdown OutputFormat = "markdown"

	// FormatJSON writes the structured extraction result.
	FormatJSON OutputFormat = "json"

	// FormatCSV writes flat rows for spreadsheet import.
	FormatCSV OutputFormat = "csv"
)

// Extension returns the file extension conventionally used for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	default:
		return ".md"
	}
}

// Config holds all configuration options for stabex.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// InputFile is the MOSES output file to extract from.
	InputFile string

	// OutputFile is where the rendered report is written. Empty means
	// derive it from InputFile using DefaultOutputSuffix and the output
	// format's extension.
	OutputFile string

	// Layout selects the report layout, or LayoutAuto to detect it.
	Layout model.Layout

	// Format is the rendered report format for the output file.
	Format OutputFormat

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .stabex in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// FileConfigs holds per-input configurations loaded from the config
	// file. Populated by LoadConfigFile.
	FileConfigs *File

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/stabex on Linux).
	DBDir string

	// SaveToDB indicates whether to record the extraction run in the
	// history database. Disabled with --no-save.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (layout, format).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Layout:   DefaultLayout,
		Format:   FormatMarkdown,
		SaveToDB: true,
	}
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return ErrNoInputFile
	}
	switch c.Layout {
	case model.LayoutBasic, model.LayoutExtended, model.LayoutAuto:
	default:
		return ErrInvalidLayout
	}
	switch c.Format {
	case FormatMarkdown, FormatJSON, FormatCSV:
	default:
		return ErrInvalidFormat
	}
	return nil
}

// ResolveOutputFile returns the output path for the rendered report,
// deriving one next to the input file when none was configured.
func (c *Config) ResolveOutputFile() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	base := strings.TrimSuffix(c.InputFile, filepath.Ext(c.InputFile))
	return base + DefaultOutputSuffix + c.Format.Extension()
}

// XDGDataDir returns the XDG data directory for stabex.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/stabex
// On macOS: ~/Library/Application Support/stabex
// On Windows: %LOCALAPPDATA%\stabex
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
