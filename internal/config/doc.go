// Package config provides configuration structures and utilities for stabex.
// It defines the main options for extraction runs, report output preferences,
// and the optional .stabex configuration file with per-input overrides.
package config
