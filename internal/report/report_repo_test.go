package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/jagatraya2508/absensi/internal/report"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

func TestReportRepository_Monthly(t *testing.T) {
	gdb, mock := newGormMock(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM users u\s+LEFT JOIN attendances a`).
		WithArgs(start, end, "employee").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "total_present", "valid_checkins", "invalid_checkins"}).
			AddRow("u-1", "Ani", 20, 18, 2))

	rows, err := report.NewRepository(gdb).Monthly(context.Background(), start, end)

	assert.NoError(t, err)
	assert.Equal(t, []report.MonthlyCount{{UserID: "u-1", Name: "Ani", TotalPresent: 20, ValidCheckins: 18, InvalidCheckins: 2}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
