package config

// FileConfig holds per-input configuration for a single MOSES output file.
// This lets users pin layouts and output destinations for files they
// extract repeatedly, instead of repeating flags.
type FileConfig struct {
	// Layout overrides layout detection for this input ("basic",
	// "extended", or empty to auto-detect).
	Layout string `yaml:"layout,omitempty"`

	// Format overrides the rendered report format for this input
	// ("markdown", "json", or "csv").
	Format string `yaml:"format,omitempty"`

	// Output overrides the derived output path for this input.
	Output string `yaml:"output,omitempty"`
}

// File represents the structure of the .stabex configuration file.
type File struct {
	// Files maps input file base names to their per-input configurations.
	// Keys are matched against the base name of the input path, e.g.
	// "out00001.txt".
	Files map[string]FileConfig `yaml:"files,omitempty"`

	// Defaults contains default per-input configuration applied to all
	// inputs unless overridden in the file-specific configuration.
	Defaults FileConfig `yaml:"defaults,omitempty"`
}

// GetFileConfig returns the configuration for a specific input file base
// name. It merges the file-specific configuration with defaults.
func (cf *File) GetFileConfig(baseName string) FileConfig {
	result := cf.Defaults

	if fileConfig, ok := cf.Files[baseName]; ok {
		if fileConfig.Layout != "" {
			result.Layout = fileConfig.Layout
		}
		if fileConfig.Format != "" {
			result.Format = fileConfig.Format
		}
		if fileConfig.Output != "" {
			result.Output = fileConfig.Output
		}
	}

	return result
}
