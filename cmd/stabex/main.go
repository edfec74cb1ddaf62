// Package main provides the entry point for the stabex CLI.
//
// stabex extracts damage stability results from MOSES output files and
// renders them as human-readable, Markdown, JSON, or CSV reports.
//
// Usage:
//
//	stabex extract <moses-output-file>
//	stabex compare <moses-output-file>
//
// See --help for all available options.
package main

// main is the entry point for stabex.
func main() {
	Execute()
}
