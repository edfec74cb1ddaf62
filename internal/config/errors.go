package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInputFile is returned when no input file is specified.
	ErrNoInputFile = errors.New("no input file specified: provide a MOSES output file path")

	// ErrInvalidLayout is returned when the layout is not one of
	// basic, extended, or auto.
	ErrInvalidLayout = errors.New("invalid layout: must be basic, extended, or auto")

	// ErrInvalidFormat is returned when the output format is not one of
	// markdown, json, or csv.
	ErrInvalidFormat = errors.New("invalid output format: must be markdown, json, or csv")
)
