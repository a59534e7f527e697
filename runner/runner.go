package runner

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os/user"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lifeplan.runner")

// Migration file section markers.
const (
	UpMarker   = "-- Up Migration"
	DownMarker = "-- Down Migration (Rollback)"
)

// Bookkeeping tables owned by the runner.
const (
	MigrationsTable = "schema_migrations"
	LogsTable       = "migration_logs"
)

// ErrFailedMigrations is returned by Apply while a failed migration is recorded.
var ErrFailedMigrations = errors.New("failed migrations detected")

// MigrationRecord represents a migration execution record
type MigrationRecord struct {
	ID            int
	MigrationName string
	ExecutedAt    time.Time
	ExecutionTime time.Duration
	ExecutedBy    string
	Status        string
	ErrorMessage  string
	Checksum      string
	TableAffected string
}

// MigrationLog represents a migration log entry
type MigrationLog struct {
	ID            int
	Timestamp     time.Time
	Level         string
	Message       string
	User          string
	Details       string
	MigrationName string
}

// Migration is a parsed migration file.
type Migration struct {
	Name string
	Up   string
	Down string
}

// StatusReport lists applied, pending and failed migrations.
type StatusReport struct {
	Applied []string
	Pending []string
	Failed  []MigrationRecord
}

// Runner applies and rolls back migrations read from an fs.FS.
type Runner struct {
	pool *pgxpool.Pool
	fsys fs.FS
	user string
}

func New(pool *pgxpool.Pool, fsys fs.FS) *Runner {
	return &Runner{pool: pool, fsys: fsys, user: currentUser()}
}

func currentUser() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	return u.Username
}

func calculateChecksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}

var tableRef = regexp.MustCompile(`(?i)(?:CREATE TABLE(?: IF NOT EXISTS)?|ALTER TABLE|DROP TABLE(?: IF EXISTS)?|CREATE (?:UNIQUE )?INDEX [^\s]+ ON)\s+"?([a-z_][a-z0-9_]*)"?`)

// tablesAffected lists the tables touched by sql, in order of first appearance.
func tablesAffected(sql string) string {
	seen := map[string]bool{}
	var tables []string
	for _, m := range tableRef.FindAllStringSubmatch(sql, -1) {
		name := strings.ToLower(m[1])
		if !seen[name] {
			seen[name] = true
			tables = append(tables, name)
		}
	}
	return strings.Join(tables, ",")
}

// ParseMigration splits a migration file into its up and down SQL.
func ParseMigration(name, content string) (Migration, error) {
	upStart := strings.Index(content, UpMarker)
	if upStart < 0 {
		return Migration{}, fmt.Errorf("migration file %s does not contain up migration section", name)
	}
	downStart := strings.Index(content, DownMarker)
	if downStart < 0 {
		return Migration{}, fmt.Errorf("migration file %s does not contain rollback section", name)
	}
	if downStart < upStart {
		return Migration{}, fmt.Errorf("migration file %s has the rollback section before the up section", name)
	}

	up := section(content[upStart+len(UpMarker) : downStart])
	down := section(content[downStart+len(DownMarker):])
	if up == "" {
		return Migration{}, fmt.Errorf("migration file %s has an empty up section", name)
	}
	return Migration{Name: name, Up: up, Down: down}, nil
}

// section trims a section body and drops its "-- ====" underline.
func section(body string) string {
	body = strings.TrimSpace(body)
	if strings.HasPrefix(body, "-- =") {
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		} else {
			body = ""
		}
	}
	return strings.TrimSpace(body)
}

// Migrations reads and parses every .sql file in lexical order.
func (r *Runner) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(r.fsys, path.Clean(name))
		if err != nil {
			return nil, fmt.Errorf("read file %s: %w", name, err)
		}
		m, err := ParseMigration(name, string(content))
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, m)
	}
	return migrations, nil
}

func (r *Runner) ensureMigrationsTable(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		id SERIAL PRIMARY KEY,
		filename TEXT NOT NULL UNIQUE,
		applied_at TIMESTAMP DEFAULT now(),
		execution_time INTERVAL,
		executed_by TEXT,
		status TEXT DEFAULT 'success',
		error_message TEXT,
		checksum TEXT,
		table_affected TEXT
	);
	CREATE TABLE IF NOT EXISTS migration_logs (
		id SERIAL PRIMARY KEY,
		timestamp TIMESTAMP DEFAULT now(),
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		user_name TEXT,
		details TEXT,
		migration_name TEXT
	);
	`)
	if err != nil {
		return fmt.Errorf("failed to create migration tables: %w", err)
	}
	return nil
}

func (r *Runner) logActivity(ctx context.Context, level, message, migrationName, details string) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO migration_logs (level, message, user_name, migration_name, details)
		VALUES ($1, $2, $3, $4, $5)
	`, level, message, r.user, migrationName, details)
	if err != nil {
		log.Warningf("could not write migration log for %s: %s", migrationName, err)
	}
}

func (r *Runner) appliedOrdered(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT filename FROM schema_migrations WHERE status = 'success' ORDER BY applied_at DESC, id DESC;`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	applied, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan filename: %w", err)
	}
	return applied, nil
}

func (r *Runner) failed(ctx context.Context) ([]MigrationRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT filename, COALESCE(error_message, '') FROM schema_migrations WHERE status = 'failed' ORDER BY filename;`)
	if err != nil {
		return nil, fmt.Errorf("query failed migrations: %w", err)
	}
	defer rows.Close()

	var failed []MigrationRecord
	for rows.Next() {
		var record MigrationRecord
		if err := rows.Scan(&record.MigrationName, &record.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan failed migration: %w", err)
		}
		record.Status = "failed"
		failed = append(failed, record)
	}
	return failed, rows.Err()
}

// Pending returns the migrations not yet applied successfully.
func (r *Runner) Pending(ctx context.Context) ([]Migration, error) {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}
	return r.pending(ctx)
}

func (r *Runner) pending(ctx context.Context) ([]Migration, error) {
	applied, err := r.appliedOrdered(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(applied))
	for _, f := range applied {
		done[f] = true
	}

	all, err := r.Migrations()
	if err != nil {
		return nil, err
	}
	var pending []Migration
	for _, m := range all {
		if !done[m.Name] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// Apply runs every pending migration, each in its own transaction, and
// returns the names applied. It refuses to run while a failure is recorded.
func (r *Runner) Apply(ctx context.Context) ([]string, error) {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure migrations table: %w", err)
	}

	failed, err := r.failed(ctx)
	if err != nil {
		return nil, fmt.Errorf("check failed migrations: %w", err)
	}
	if len(failed) > 0 {
		names := make([]string, len(failed))
		for i, f := range failed {
			names[i] = f.MigrationName + ": " + f.ErrorMessage
		}
		return nil, fmt.Errorf("%w: %s", ErrFailedMigrations, strings.Join(names, "; "))
	}

	pending, err := r.pending(ctx)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, m := range pending {
		log.Infof("applying migration %s", m.Name)
		if err := r.applyMigration(ctx, m); err != nil {
			return applied, err
		}
		applied = append(applied, m.Name)
	}
	return applied, nil
}

func (r *Runner) applyMigration(ctx context.Context, m Migration) error {
	startTime := time.Now()
	checksum := calculateChecksum(m.Up)
	tables := tablesAffected(m.Up)

	r.logActivity(ctx, "INFO", "Starting migration: "+m.Name, m.Name, "Migration execution started")

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, m.Up); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO schema_migrations (filename, execution_time, executed_by, status, checksum, table_affected)
			VALUES ($1, $2, $3, 'success', $4, $5)
			ON CONFLICT (filename) DO UPDATE SET
				applied_at = now(), execution_time = EXCLUDED.execution_time, executed_by = EXCLUDED.executed_by,
				status = 'success', error_message = NULL, checksum = EXCLUDED.checksum, table_affected = EXCLUDED.table_affected
		`, m.Name, time.Since(startTime), r.user, checksum, tables)
		return err
	})
	executionTime := time.Since(startTime)

	if err != nil {
		r.logActivity(ctx, "ERROR", "Migration failed: "+m.Name, m.Name, err.Error())
		_, insertErr := r.pool.Exec(ctx, `
			INSERT INTO schema_migrations (filename, execution_time, executed_by, status, error_message, checksum, table_affected)
			VALUES ($1, $2, $3, 'failed', $4, $5, $6)
			ON CONFLICT (filename) DO UPDATE SET status = 'failed', error_message = EXCLUDED.error_message
		`, m.Name, executionTime, r.user, err.Error(), checksum, tables)
		if insertErr != nil {
			return fmt.Errorf("recording failed migration %s: %w", m.Name, insertErr)
		}
		return fmt.Errorf("executing migration %s: %w", m.Name, err)
	}

	r.logActivity(ctx, "SUCCESS", "Migration completed: "+m.Name, m.Name, fmt.Sprintf("Execution time: %v", executionTime))
	return nil
}

// ClearFailed forgets recorded failures so Apply can retry them. It returns
// the number of records removed.
func (r *Runner) ClearFailed(ctx context.Context) (int64, error) {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return 0, err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM schema_migrations WHERE status = 'failed'`)
	if err != nil {
		return 0, fmt.Errorf("clear failed migrations: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Rollback reverts the most recent steps migrations and returns their names.
func (r *Runner) Rollback(ctx context.Context, steps int) ([]string, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := r.appliedOrdered(ctx)
	if err != nil {
		return nil, err
	}
	if steps > len(applied) {
		steps = len(applied)
	}

	all, err := r.Migrations()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]Migration, len(all))
	for _, m := range all {
		byName[m.Name] = m
	}

	var rolledBack []string
	for _, name := range applied[:steps] {
		m, ok := byName[name]
		if !ok {
			return rolledBack, fmt.Errorf("migration file %s not found", name)
		}
		log.Infof("rolling back migration %s", name)
		if err := r.rollbackMigration(ctx, m); err != nil {
			return rolledBack, err
		}
		rolledBack = append(rolledBack, name)
	}
	return rolledBack, nil
}

func (r *Runner) rollbackMigration(ctx context.Context, m Migration) error {
	startTime := time.Now()
	r.logActivity(ctx, "INFO", "Starting rollback: "+m.Name, m.Name, "Rollback execution started")

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if strings.TrimSpace(m.Down) != "" {
			if _, err := tx.Exec(ctx, m.Down); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE filename = $1;`, m.Name)
		return err
	})
	if err != nil {
		r.logActivity(ctx, "ERROR", "Rollback failed: "+m.Name, m.Name, err.Error())
		return fmt.Errorf("executing rollback for %s: %w", m.Name, err)
	}

	r.logActivity(ctx, "SUCCESS", "Rollback completed: "+m.Name, m.Name, fmt.Sprintf("Execution time: %v", time.Since(startTime)))
	return nil
}

// Status reports applied, pending and failed migrations.
func (r *Runner) Status(ctx context.Context) (StatusReport, error) {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return StatusReport{}, err
	}

	applied, err := r.appliedOrdered(ctx)
	if err != nil {
		return StatusReport{}, err
	}
	sort.Strings(applied)

	pending, err := r.pending(ctx)
	if err != nil {
		return StatusReport{}, err
	}
	failed, err := r.failed(ctx)
	if err != nil {
		return StatusReport{}, err
	}

	report := StatusReport{Applied: applied, Failed: failed}
	for _, m := range pending {
		report.Pending = append(report.Pending, m.Name)
	}
	return report, nil
}

// History retrieves migration history with optional filtering
func (r *Runner) History(ctx context.Context, limit int, tableFilter string) ([]MigrationRecord, error) {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, filename, applied_at, execution_time, COALESCE(executed_by, ''),
		       COALESCE(status, ''), COALESCE(error_message, ''), COALESCE(checksum, ''), COALESCE(table_affected, '')
		FROM schema_migrations
	`

	var args []any
	if tableFilter != "" {
		args = append(args, "%"+tableFilter+"%")
		query += fmt.Sprintf(" WHERE table_affected ILIKE $%d", len(args))
	}
	query += " ORDER BY applied_at DESC, id DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query migration history: %w", err)
	}
	defer rows.Close()

	var records []MigrationRecord
	for rows.Next() {
		var record MigrationRecord
		var executionTime *time.Duration

		err := rows.Scan(
			&record.ID,
			&record.MigrationName,
			&record.ExecutedAt,
			&executionTime,
			&record.ExecutedBy,
			&record.Status,
			&record.ErrorMessage,
			&record.Checksum,
			&record.TableAffected,
		)
		if err != nil {
			return nil, fmt.Errorf("scan migration record: %w", err)
		}
		if executionTime != nil {
			record.ExecutionTime = *executionTime
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Logs retrieves migration logs, newest first.
func (r *Runner) Logs(ctx context.Context, limit int) ([]MigrationLog, error) {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, timestamp, level, message, COALESCE(user_name, ''), COALESCE(details, ''), COALESCE(migration_name, '')
		FROM migration_logs
		ORDER BY timestamp DESC, id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query migration logs: %w", err)
	}
	defer rows.Close()

	var logs []MigrationLog
	for rows.Next() {
		var entry MigrationLog
		if err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.Level,
			&entry.Message,
			&entry.User,
			&entry.Details,
			&entry.MigrationName,
		); err != nil {
			return nil, fmt.Errorf("scan migration log: %w", err)
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
