package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/seakeeper/stabex/internal/model"
)

// HistoryDB provides SQLite-based storage for extraction runs.
// It manages connection pooling and provides methods for saving and
// querying run history.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "stabex.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; more connections buy nothing for
	// this workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Extraction runs store complete results as JSON
	CREATE TABLE IF NOT EXISTS extraction_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_file TEXT NOT NULL,
		source_hash TEXT,
		layout TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_input ON extraction_runs(input_file);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON extraction_runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveExtraction records an extraction run, returning its database id.
// Runs are keyed by the base name of the input file so the same report
// extracted from different directories shares one history.
func (hdb *HistoryDB) SaveExtraction(ctx context.Context, result *model.ExtractionResult) (int64, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize extraction result: %w", err)
	}

	query := `
	INSERT INTO extraction_runs (input_file, source_hash, layout, record_count, result_json)
	VALUES (?, ?, ?, ?, ?)
	`

	res, err := hdb.db.ExecContext(ctx, query,
		filepath.Base(result.InputFile),
		result.SourceHash,
		string(result.Layout),
		len(result.Records),
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save extraction run: %w", err)
	}

	return res.LastInsertId()
}

// GetLatestExtraction retrieves the most recent run for an input file base
// name. Returns nil with no error when no run exists.
func (hdb *HistoryDB) GetLatestExtraction(ctx context.Context, inputFile string) (*model.ExtractionResult, error) {
	query := `
	SELECT result_json FROM extraction_runs
	WHERE input_file = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var resultJSON string
	err := hdb.db.QueryRowContext(ctx, query, filepath.Base(inputFile)).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction run: %w", err)
	}

	return unmarshalResult(resultJSON)
}

// GetExtractionHistory retrieves all runs for an input file base name,
// newest first.
func (hdb *HistoryDB) GetExtractionHistory(ctx context.Context, inputFile string) ([]*model.ExtractionResult, error) {
	query := `
	SELECT result_json FROM extraction_runs
	WHERE input_file = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, filepath.Base(inputFile))
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction history: %w", err)
	}
	defer rows.Close()

	var results []*model.ExtractionResult
	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan extraction run: %w", err)
		}

		result, err := unmarshalResult(resultJSON)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// GetPreviousExtraction retrieves the most recent run for an input file
// that is older than the run with the given id. Returns nil with no error
// when no earlier run exists.
func (hdb *HistoryDB) GetPreviousExtraction(ctx context.Context, inputFile string, beforeID int64) (*model.ExtractionResult, error) {
	query := `
	SELECT result_json FROM extraction_runs
	WHERE input_file = ? AND id < ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var resultJSON string
	err := hdb.db.QueryRowContext(ctx, query, filepath.Base(inputFile), beforeID).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction run: %w", err)
	}

	return unmarshalResult(resultJSON)
}

// GetExtractionByID retrieves a run by its database id.
// Returns nil with no error when the id does not exist.
func (hdb *HistoryDB) GetExtractionByID(ctx context.Context, id int64) (*model.ExtractionResult, error) {
	query := `
	SELECT result_json FROM extraction_runs
	WHERE id = ?
	`

	var resultJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction run: %w", err)
	}

	return unmarshalResult(resultJSON)
}

// ListInputs returns the distinct input file names with recorded runs.
func (hdb *HistoryDB) ListInputs(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT input_file FROM extraction_runs
	ORDER BY input_file
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inputs: %w", err)
	}
	defer rows.Close()

	var inputs []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, fmt.Errorf("failed to scan input: %w", err)
		}
		inputs = append(inputs, input)
	}

	return inputs, rows.Err()
}

// RunMetadata contains summary information about a recorded run.
// This is used for displaying history without loading full results.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// InputFile is the base name of the extracted input file.
	InputFile string

	// Layout is the report layout the run was extracted under.
	Layout model.Layout

	// RecordCount is the number of case records in the run.
	RecordCount int

	// SourceHash is the hex sha256 of the raw input bytes.
	SourceHash string

	// Timestamp is when the extraction was recorded.
	Timestamp time.Time
}

// GetRunHistory retrieves run metadata for an input file, newest first.
// This is more efficient than loading full results when only metadata is
// needed.
func (hdb *HistoryDB) GetRunHistory(ctx context.Context, inputFile string) ([]RunMetadata, error) {
	query := `
	SELECT id, input_file, layout, record_count, source_hash, timestamp
	FROM extraction_runs
	WHERE input_file = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, filepath.Base(inputFile))
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var layout string
		var sourceHash sql.NullString
		var timestamp string

		if err := rows.Scan(&meta.ID, &meta.InputFile, &layout, &meta.RecordCount, &sourceHash, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Layout = model.Layout(layout)
		if sourceHash.Valid {
			meta.SourceHash = sourceHash.String
		}
		meta.Timestamp = parseTimestamp(timestamp)

		results = append(results, meta)
	}

	return results, rows.Err()
}

// LatestRunID returns the id of the newest recorded run for an input file,
// or 0 when no run exists.
func (hdb *HistoryDB) LatestRunID(ctx context.Context, inputFile string) (int64, error) {
	query := `
	SELECT id FROM extraction_runs
	WHERE input_file = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var id int64
	err := hdb.db.QueryRowContext(ctx, query, filepath.Base(inputFile)).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run id: %w", err)
	}
	return id, nil
}

// unmarshalResult decodes a stored result row.
func unmarshalResult(resultJSON string) (*model.ExtractionResult, error) {
	var result model.ExtractionResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse extraction result: %w", err)
	}
	return &result, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
