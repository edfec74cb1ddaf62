// Package extract implements the MOSES output scanner.
//
// A MOSES stability run writes a flat text log in which the values of
// interest (damage case headers, draft mark readings, stability criteria)
// are scattered across loosely delimited sections. The extractor walks the
// file line by line, tracking which damage case is in scope and which
// section is open, and assembles one CaseRecord per completed case.
//
// Design decision: the section tracking is an explicit three-state machine
// (idle, draft marks, stability summary) rather than a pair of booleans.
// Transitions are triggered by fixed banner lines and closed by parsing the
// section's terminal field, which keeps the transition set small enough to
// test exhaustively.
//
// Two layouts are supported. The basic layout finalizes a record inline as
// soon as a GM criteria line is parsed. The extended layout accumulates two
// keyed tables (case to drafts, case to stability data) and joins them after
// the scan; cases present in only one table are dropped.
package extract
