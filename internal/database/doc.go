// Package database provides SQLite-based persistence for extraction runs.
//
// Every successful extraction can be recorded in a small history database
// so later runs against revised MOSES output can be compared (GM drift,
// added or removed damage cases). The database lives in the XDG data
// directory and is entirely optional: the extract command works without it.
//
// Design decision: We store the full extraction result as JSON in a single
// column rather than normalizing records into rows. History queries only
// ever need whole runs, and JSON keeps the schema stable as record fields
// evolve.
package database
