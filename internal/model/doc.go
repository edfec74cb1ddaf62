// Package model defines the core data structures used throughout stabex.
//
// This package contains the following main types:
//   - CaseRecord: Extracted results for one damage case
//   - ExtractionResult: A full extraction run over one input file
//   - Layout: The MOSES report layout a file follows
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extract, report, database) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
