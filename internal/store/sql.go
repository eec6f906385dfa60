package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/joelkehle/aireadiness/internal/readiness"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id           TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	email        TEXT NOT NULL DEFAULT '',
	company      TEXT NOT NULL DEFAULT '',
	role         TEXT NOT NULL DEFAULT '',
	language     TEXT NOT NULL DEFAULT 'en',
	score        INTEGER NOT NULL DEFAULT 0,
	report_json  TEXT NOT NULL,
	metrics_json TEXT
);
`

// SQLStore persists generated reports. metrics_json is optional: databases
// created before it existed reject the column, and Save retries without it.
type SQLStore struct {
	db *sqlx.DB
}

type reportRow struct {
	ID          string         `db:"id"`
	CreatedAt   string         `db:"created_at"`
	Email       string         `db:"email"`
	Company     string         `db:"company"`
	Role        string         `db:"role"`
	Language    string         `db:"language"`
	Score       int            `db:"score"`
	ReportJSON  string         `db:"report_json"`
	MetricsJSON sql.NullString `db:"metrics_json"`
}

// Open connects and creates the schema. For SQLite the DSN is a file path.
func Open(driver, dsn string) (*SQLStore, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch driver {
	case DriverSQLite, "":
		db, err = openSQLite(dsn)
	case DriverPostgres:
		db, err = sqlx.Open(DriverPostgres, dsn)
		if err == nil {
			db.SetMaxOpenConns(10)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(5 * time.Minute)
		}
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func openSQLite(path string) (*sqlx.DB, error) {
	if path != ":memory:" && !strings.Contains(path, "?") {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		path += "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}
	db, err := sqlx.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// New wraps an existing handle without touching the schema.
func New(db *sqlx.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLStore) Save(ctx context.Context, rec readiness.StoredReport) error {
	reportJSON, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	row := reportRow{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		Email:      rec.Email,
		Company:    rec.Company,
		Role:       rec.Role,
		Language:   rec.Language,
		Score:      rec.Score,
		ReportJSON: string(reportJSON),
	}
	if rec.Metrics != nil {
		blob, err := json.Marshal(rec.Metrics)
		if err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
		row.MetricsJSON = sql.NullString{String: string(blob), Valid: true}
	}

	_, err = s.db.NamedExecContext(ctx, `INSERT INTO reports
		(id, created_at, email, company, role, language, score, report_json, metrics_json)
		VALUES (:id, :created_at, :email, :company, :role, :language, :score, :report_json, :metrics_json)`, row)
	if err == nil {
		return nil
	}
	if !isUnknownColumn(err) {
		return fmt.Errorf("insert report %s: %w", rec.ID, err)
	}
	_, err = s.db.NamedExecContext(ctx, `INSERT INTO reports
		(id, created_at, email, company, role, language, score, report_json)
		VALUES (:id, :created_at, :email, :company, :role, :language, :score, :report_json)`, row)
	if err != nil {
		return fmt.Errorf("insert report %s without metrics: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (readiness.StoredReport, error) {
	var row reportRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT id, created_at, email, company, role, language, score, report_json, metrics_json
		FROM reports WHERE id = ?`), id)
	if err != nil && isUnknownColumn(err) {
		err = s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT id, created_at, email, company, role, language, score, report_json
			FROM reports WHERE id = ?`), id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return readiness.StoredReport{}, readiness.ErrReportNotFound
	}
	if err != nil {
		return readiness.StoredReport{}, fmt.Errorf("get report %s: %w", id, err)
	}

	rec := readiness.StoredReport{
		ID:       row.ID,
		Email:    row.Email,
		Company:  row.Company,
		Role:     row.Role,
		Language: row.Language,
		Score:    row.Score,
	}
	if ts, err := time.Parse(time.RFC3339Nano, row.CreatedAt); err == nil {
		rec.CreatedAt = ts
	}
	if err := json.Unmarshal([]byte(row.ReportJSON), &rec.Report); err != nil {
		return readiness.StoredReport{}, fmt.Errorf("decode report %s: %w", id, err)
	}
	if row.MetricsJSON.Valid && row.MetricsJSON.String != "" {
		var m readiness.DerivedMetrics
		if err := json.Unmarshal([]byte(row.MetricsJSON.String), &m); err == nil {
			rec.Metrics = &m
		}
	}
	return rec, nil
}

// isUnknownColumn matches the SQLite and Postgres messages for a column the
// table does not have.
func isUnknownColumn(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "has no column named") ||
		strings.Contains(msg, "no such column") ||
		(strings.Contains(msg, "column") && strings.Contains(msg, "does not exist"))
}
