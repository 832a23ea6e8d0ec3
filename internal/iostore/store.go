package iostore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"

	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for run tracking.
const (
	runsTable         = "readiness_runs"
	personScoresTable = "readiness_person_scores"
)

// personScoreColumns is the insert and select order for readiness_person_scores.
var personScoreColumns = []string{
	"run_id", "person_id", "department_id", "role", "overall_score",
	"personality_score", "cognitive_score", "motivational_score", "behavioral_score",
	"data_completeness", "predictive_confidence", "readiness_label", "scored_at",
}

// RunStoreImpl implements the RunStore interface on top of database/sql.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore opens the run store for the specified backend and creates its tables.
// The none backend returns a store whose operations are no-ops.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (*RunStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &RunStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Add parseTime=true to the DSN."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

// openDB opens a database handle for the backend without verifying it.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetRunDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// A single connection avoids "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname?parseTime=true", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost user=u password=p dbname=readiness", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// createRunTables creates the run tracking tables if they do not exist yet.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{personScoresTable, getCreatePersonScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for readiness_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid CHAR(36) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_people INT NOT NULL DEFAULT 0,
				total_failures INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_people INT NOT NULL DEFAULT 0,
				total_failures INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_people INTEGER NOT NULL DEFAULT 0,
				total_failures INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreatePersonScoresQuery returns the CREATE TABLE query for readiness_person_scores.
// Person IDs are not unique keys: a population may repeat an ID.
func getCreatePersonScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(personScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				person_id VARCHAR(255) NOT NULL,
				department_id VARCHAR(255) NOT NULL,
				role VARCHAR(255) NOT NULL,
				overall_score DOUBLE NOT NULL,
				personality_score DOUBLE,
				cognitive_score DOUBLE,
				motivational_score DOUBLE,
				behavioral_score DOUBLE NOT NULL,
				data_completeness DOUBLE NOT NULL,
				predictive_confidence DOUBLE NOT NULL,
				readiness_label VARCHAR(50) NOT NULL,
				scored_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				person_id TEXT NOT NULL,
				department_id TEXT NOT NULL,
				role TEXT NOT NULL,
				overall_score DOUBLE PRECISION NOT NULL,
				personality_score DOUBLE PRECISION,
				cognitive_score DOUBLE PRECISION,
				motivational_score DOUBLE PRECISION,
				behavioral_score DOUBLE PRECISION NOT NULL,
				data_completeness DOUBLE PRECISION NOT NULL,
				predictive_confidence DOUBLE PRECISION NOT NULL,
				readiness_label TEXT NOT NULL,
				scored_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				person_id TEXT NOT NULL,
				department_id TEXT NOT NULL,
				role TEXT NOT NULL,
				overall_score REAL NOT NULL,
				personality_score REAL,
				cognitive_score REAL,
				motivational_score REAL,
				behavioral_score REAL NOT NULL,
				data_completeness REAL NOT NULL,
				predictive_confidence REAL NOT NULL,
				readiness_label TEXT NOT NULL,
				scored_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run and returns its store ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)
	runUUID := uuid.NewString()

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, runUUID, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, runUUID, formatTime(startTime, rs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun stamps the run with its end time, duration and people counts.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalPeople, totalFailures int) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholders(rs.backend, 1, 1))

	var startTime time.Time
	if err := scanTime(rs.db.QueryRow(query, runID), rs.backend, &startTime); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_people = %s, total_failures = %s WHERE run_id = %s`,
		quotedTableName,
		placeholders(rs.backend, 1, 1), placeholders(rs.backend, 2, 1), placeholders(rs.backend, 3, 1),
		placeholders(rs.backend, 4, 1), placeholders(rs.backend, 5, 1))

	if _, err := rs.db.Exec(updateQuery, formatTime(endTime, rs.backend), durationMs, totalPeople, totalFailures, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordPersonScores stores the scored people of a run in a single transaction.
// Components that were not computed are written as NULL.
func (rs *RunStoreImpl) RecordPersonScores(runID int64, records []schema.PersonScoreRecord) error {
	if rs.backend == schema.NoneBackend || rs.db == nil || len(records) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteTableName(personScoresTable, rs.backend),
		strings.Join(personScoreColumns, ", "),
		placeholders(rs.backend, 1, len(personScoreColumns)))

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare person score insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		_, err := stmt.Exec(
			runID, r.PersonID, r.DepartmentID, r.Role, r.OverallScore,
			r.PersonalityScore, r.CognitiveScore, r.MotivationalScore, r.BehavioralScore,
			r.DataCompleteness, r.PredictiveConfidence, r.ReadinessLabel, formatTime(r.ScoredAt, rs.backend),
		)
		if err != nil {
			return fmt.Errorf("failed to insert score for person %s: %w", r.PersonID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit person scores: %w", err)
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, rs.backend)
	if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := rs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns))
		var lastRunTime any
		if err := row.Scan(&status.LastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		t, err := parseTimeValue(lastRunTime)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = t

		row = rs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns))
		if err := scanTime(row, rs.backend, &status.OldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		row = rs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_people), 0) FROM %s", quotedRuns))
		if err := row.Scan(&status.TotalPeopleScored); err != nil {
			return status, fmt.Errorf("failed to get total people scored: %w", err)
		}
	}

	for _, table := range []string{runsTable, personScoresTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend))
		if err := rs.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all runs from the store, oldest first.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uuid, start_time, end_time, run_duration_ms, total_people, total_failures, config_params
		FROM %s ORDER BY run_id`, quoteTableName(runsTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var startTime, endTime any
		if err := rows.Scan(&record.RunID, &record.RunUUID, &startTime, &endTime,
			&record.RunDurationMs, &record.TotalPeople, &record.TotalFailures, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if record.StartTime, err = parseTimeValue(startTime); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if endTime != nil {
			t, err := parseTimeValue(endTime)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &t
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllPersonScores retrieves all person scores from the store, grouped by run.
func (rs *RunStoreImpl) GetAllPersonScores() ([]schema.PersonScoreRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY run_id, overall_score DESC, person_id`,
		strings.Join(personScoreColumns, ", "), quoteTableName(personScoresTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query person scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PersonScoreRecord
	for rows.Next() {
		var r schema.PersonScoreRecord
		var scoredAt any
		if err := rows.Scan(&r.RunID, &r.PersonID, &r.DepartmentID, &r.Role, &r.OverallScore,
			&r.PersonalityScore, &r.CognitiveScore, &r.MotivationalScore, &r.BehavioralScore,
			&r.DataCompleteness, &r.PredictiveConfidence, &r.ReadinessLabel, &scoredAt); err != nil {
			return nil, fmt.Errorf("failed to scan person score: %w", err)
		}
		if r.ScoredAt, err = parseTimeValue(scoredAt); err != nil {
			return nil, fmt.Errorf("failed to parse scored_at: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person scores: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// quoteTableName quotes a table name for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// placeholders returns n comma-separated bind parameters starting at position start.
func placeholders(backend schema.DatabaseBackend, start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		if backend == schema.PostgreSQLBackend {
			parts[i] = fmt.Sprintf("$%d", start+i)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// formatTime converts a time.Time to the storage format for the backend.
// SQLite keeps RFC3339Nano text so that ordering and parsing stay lossless.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t
}

// scanTime scans a single time column from row.
func scanTime(row *sql.Row, backend schema.DatabaseBackend, dest *time.Time) error {
	if backend != schema.SQLiteBackend {
		return row.Scan(dest)
	}
	var raw string
	if err := row.Scan(&raw); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return err
	}
	*dest = t
	return nil
}

// parseTimeValue converts a scanned time column into time.Time. Drivers return
// time.Time for native columns and text or bytes for SQLite.
func parseTimeValue(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value of type %T", v)
	}
}
