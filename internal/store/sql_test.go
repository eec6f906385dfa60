package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelkehle/aireadiness/internal/readiness"
)

func sampleRecord(id string) readiness.StoredReport {
	uc := readiness.UserContext{FirstName: "Dana", Company: "Northwind", Language: readiness.LanguageEnglish, Score: 64}
	return readiness.StoredReport{
		ID:        id,
		CreatedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Email:     "dana@example.com",
		Company:   "Northwind",
		Role:      "Finance Manager",
		Language:  readiness.LanguageEnglish,
		Score:     64,
		Report:    readiness.MinimalReport(uc),
		Metrics:   &readiness.DerivedMetrics{ProcessType: "reporting", MonthlySavings: 7650},
	}
}

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "nested", "readiness.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSaveGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := sampleRecord("r-1")

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Report, got.Report)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, "Northwind", got.Company)
	assert.Equal(t, 64, got.Score)
	require.NotNil(t, got.Metrics)
	assert.InDelta(t, 7650, got.Metrics.MonthlySavings, 0.001)
}

func TestSQLiteDuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleRecord("r-dup")))
	assert.Error(t, s.Save(ctx, sampleRecord("r-dup")))
}

func TestSQLiteNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, readiness.ErrReportNotFound)
}

func TestSQLiteWithoutMetrics(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := sampleRecord("r-2")
	rec.Metrics = nil
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "r-2")
	require.NoError(t, err)
	assert.Nil(t, got.Metrics)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "x")
	assert.ErrorContains(t, err, "unsupported store driver")
}

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(sqlx.NewDb(db, "sqlite3")), mock
}

func TestSaveRetriesWithoutMetricsColumn(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO reports").
		WillReturnError(errors.New("table reports has no column named metrics_json"))
	mock.ExpectExec("INSERT INTO reports").
		WithArgs("r-3", sqlmock.AnyArg(), "dana@example.com", "Northwind", "Finance Manager", "en", 64, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Save(context.Background(), sampleRecord("r-3")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSurfacesOtherErrors(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO reports").WillReturnError(errors.New("database is locked"))

	err := s.Save(context.Background(), sampleRecord("r-4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert report r-4")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRetriesWithoutMetricsColumn(t *testing.T) {
	s, mock := newMockStore(t)
	rec := sampleRecord("r-5")
	mock.ExpectQuery("SELECT (.+) metrics_json").WillReturnError(errors.New("no such column: metrics_json"))
	mock.ExpectQuery("SELECT (.+) FROM reports").
		WithArgs("r-5").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "email", "company", "role", "language", "score", "report_json"}).
			AddRow("r-5", "2025-03-01T09:30:00Z", rec.Email, rec.Company, rec.Role, "en", 64,
				`{"executive_summary":"Legacy row","department_challenges":["a"],"career_impact":{"productivity":"p","team":"t","leadership":"l","growth":"g"},"quick_wins":{"actions":[{"action":"a","impact":"i"}],"goals":[{"goal":"g","outcome":"o"}]},"implementation_roadmap":[{"phase":"Phase 1","duration":"30 days","description":"d","benefit":"b"}]}`))

	got, err := s.Get(context.Background(), "r-5")
	require.NoError(t, err)
	assert.Equal(t, "Legacy row", got.Report.ExecutiveSummary)
	assert.Nil(t, got.Metrics)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUnknownColumn(t *testing.T) {
	assert.True(t, isUnknownColumn(errors.New("table reports has no column named metrics_json")))
	assert.True(t, isUnknownColumn(errors.New(`pq: column "metrics_json" of relation "reports" does not exist`)))
	assert.False(t, isUnknownColumn(errors.New("database is locked")))
}
