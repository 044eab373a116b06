package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arpi-platform/regwatch/internal/model"
)

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "regwatch.db"

// RunStore persists pipeline runs so the alert, trends, and history
// subcommands can operate on the latest result without re-reading the source
// batches.
//
// The annotated record set is stored as one JSON document per run rather
// than normalized rows: runs are read back whole, never queried per record.
type RunStore struct {
	db     *sql.DB
	dbPath string
}

// Options configures RunStore behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunStore under dbDir.
// With CreateIfNotExists unset, a missing database file is an error; this is
// how read-only subcommands refuse to run before any run has been saved.
func Open(dbDir string, opts Options) (*RunStore, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("run store not found at %s: %w", dbPath, ErrStoreNotFound)
		} else if err != nil {
			return nil, fmt.Errorf("check run store path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("create run store directory: %w", err)
		}
	}

	// mode=rw prevents the driver from creating a fresh file when the
	// store is opened read-only.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}

	// SQLite supports a single writer; one pooled connection avoids
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &RunStore{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

func (s *RunStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		generated_at TEXT NOT NULL,
		max_publication_date TEXT NOT NULL,
		sources_loaded INTEGER NOT NULL,
		sources_failed INTEGER NOT NULL,
		dropped_no_title INTEGER NOT NULL,
		dropped_bad_date INTEGER NOT NULL,
		duplicates_removed INTEGER NOT NULL,
		filtered_out INTEGER NOT NULL,
		record_count INTEGER NOT NULL,
		stages TEXT NOT NULL,
		records_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_generated_at ON runs(generated_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists a completed run and returns its store ID.
func (s *RunStore) SaveRun(ctx context.Context, result *model.RunResult) (int64, error) {
	recordsJSON, err := json.Marshal(result.Records)
	if err != nil {
		return 0, fmt.Errorf("serialize records: %w", err)
	}
	stagesJSON, err := json.Marshal(result.PerformedStages)
	if err != nil {
		return 0, fmt.Errorf("serialize stages: %w", err)
	}

	query := `
	INSERT INTO runs (
		generated_at, max_publication_date,
		sources_loaded, sources_failed,
		dropped_no_title, dropped_bad_date,
		duplicates_removed, filtered_out,
		record_count, stages, records_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		result.GeneratedAt.UTC().Format(time.RFC3339Nano),
		result.MaxPublicationDate.UTC().Format(time.RFC3339),
		result.SourcesLoaded,
		result.SourcesFailed,
		result.DroppedNoTitle,
		result.DroppedBadDate,
		result.DuplicatesRemoved,
		result.FilteredOut,
		len(result.Records),
		string(stagesJSON),
		string(recordsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}

	return res.LastInsertId()
}

// LatestRun returns the most recently saved run, or ErrNoRuns when the
// store is empty.
func (s *RunStore) LatestRun(ctx context.Context) (*model.RunResult, error) {
	query := `
	SELECT generated_at, max_publication_date,
		sources_loaded, sources_failed,
		dropped_no_title, dropped_bad_date,
		duplicates_removed, filtered_out,
		stages, records_json
	FROM runs
	ORDER BY id DESC
	LIMIT 1
	`
	return s.scanRun(s.db.QueryRowContext(ctx, query))
}

// RunByID returns a saved run by its store ID, or ErrNoRuns when no run has
// that ID.
func (s *RunStore) RunByID(ctx context.Context, id int64) (*model.RunResult, error) {
	query := `
	SELECT generated_at, max_publication_date,
		sources_loaded, sources_failed,
		dropped_no_title, dropped_bad_date,
		duplicates_removed, filtered_out,
		stages, records_json
	FROM runs
	WHERE id = ?
	`
	return s.scanRun(s.db.QueryRowContext(ctx, query, id))
}

func (s *RunStore) scanRun(row *sql.Row) (*model.RunResult, error) {
	var (
		result      model.RunResult
		generatedAt string
		maxDate     string
		stagesJSON  string
		recordsJSON string
	)

	err := row.Scan(
		&generatedAt,
		&maxDate,
		&result.SourcesLoaded,
		&result.SourcesFailed,
		&result.DroppedNoTitle,
		&result.DroppedBadDate,
		&result.DuplicatesRemoved,
		&result.FilteredOut,
		&stagesJSON,
		&recordsJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("read run: %w", err)
	}

	result.GeneratedAt = parseTimestamp(generatedAt)
	result.MaxPublicationDate = parseTimestamp(maxDate)

	if err := json.Unmarshal([]byte(stagesJSON), &result.PerformedStages); err != nil {
		return nil, fmt.Errorf("parse stages: %w", err)
	}
	if err := json.Unmarshal([]byte(recordsJSON), &result.Records); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}

	return &result, nil
}

// RunMetadata summarizes a saved run without its record payload.
type RunMetadata struct {
	// ID is the run's store identifier.
	ID int64

	// GeneratedAt is the run timestamp.
	GeneratedAt time.Time

	// RecordCount is the size of the final annotated set.
	RecordCount int

	// SourcesLoaded and SourcesFailed count source batches.
	SourcesLoaded int
	SourcesFailed int

	// DuplicatesRemoved and FilteredOut summarize attrition.
	DuplicatesRemoved int
	FilteredOut       int
}

// ListRuns returns metadata for the most recent runs, newest first.
// A limit of 0 or less returns all runs.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, generated_at, record_count,
		sources_loaded, sources_failed,
		duplicates_removed, filtered_out
	FROM runs
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only query

	var results []RunMetadata
	for rows.Next() {
		var (
			meta        RunMetadata
			generatedAt string
		)
		if err := rows.Scan(
			&meta.ID,
			&generatedAt,
			&meta.RecordCount,
			&meta.SourcesLoaded,
			&meta.SourcesFailed,
			&meta.DuplicatesRemoved,
			&meta.FilteredOut,
		); err != nil {
			return nil, fmt.Errorf("scan run metadata: %w", err)
		}
		meta.GeneratedAt = parseTimestamp(generatedAt)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp layouts the store may encounter.
// More specific layouts come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses a stored timestamp, returning the zero time when no
// layout matches.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
