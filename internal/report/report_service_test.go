package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jagatraya2508/absensi/internal/report"
	reporterrors "github.com/jagatraya2508/absensi/internal/report/errors"

	"github.com/stretchr/testify/assert"
)

type fakeReportRepository struct {
	dailyFn   func(ctx context.Context, day time.Time) ([]report.DailyRow, error)
	monthlyFn func(ctx context.Context, start, end time.Time) ([]report.MonthlyCount, error)
}

func (f *fakeReportRepository) Daily(ctx context.Context, day time.Time) ([]report.DailyRow, error) {
	if f.dailyFn != nil {
		return f.dailyFn(ctx, day)
	}
	return nil, nil
}

func (f *fakeReportRepository) Monthly(ctx context.Context, start, end time.Time) ([]report.MonthlyCount, error) {
	if f.monthlyFn != nil {
		return f.monthlyFn(ctx, start, end)
	}
	return nil, nil
}

func TestReportService_Daily(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeReportRepository{
			dailyFn: func(ctx context.Context, day time.Time) ([]report.DailyRow, error) {
				assert.Equal(t, "2025-01-02", day.Format("2006-01-02"))
				return []report.DailyRow{{UserID: "1"}}, nil
			},
		}

		resp, err := report.NewService(repo, time.UTC).Daily(ctx, report.DailyFilter{Date: "2025-01-02"})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Summary.Absent)
		assert.Equal(t, "2025-01-02", resp.Summary.Date)
	})

	t.Run("success empty day renders empty records", func(t *testing.T) {
		resp, err := report.NewService(&fakeReportRepository{}, time.UTC).Daily(ctx, report.DailyFilter{Date: "2025-01-02"})

		assert.NoError(t, err)
		assert.NotNil(t, resp.Records)
	})

	t.Run("negative invalid date", func(t *testing.T) {
		_, err := report.NewService(&fakeReportRepository{}, time.UTC).Daily(ctx, report.DailyFilter{Date: "02-01-2025"})

		assert.ErrorIs(t, err, reporterrors.ErrInvalidDate)
	})

	t.Run("negative repo error", func(t *testing.T) {
		repo := &fakeReportRepository{
			dailyFn: func(ctx context.Context, day time.Time) ([]report.DailyRow, error) {
				return nil, errors.New("db down")
			},
		}

		_, err := report.NewService(repo, time.UTC).Daily(ctx, report.DailyFilter{Date: "2025-01-02"})

		assert.EqualError(t, err, "db down")
	})
}

func TestReportService_Monthly(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeReportRepository{
			monthlyFn: func(ctx context.Context, start, end time.Time) ([]report.MonthlyCount, error) {
				assert.Equal(t, "2025-01-01", start.Format("2006-01-02"))
				assert.Equal(t, "2025-01-31", end.Format("2006-01-02"))
				return []report.MonthlyCount{{UserID: "1", TotalPresent: 23}}, nil
			},
		}

		resp, err := report.NewService(repo, time.UTC).Monthly(ctx, report.MonthlyFilter{Year: 2025, Month: 1})

		assert.NoError(t, err)
		assert.Equal(t, 100, resp.Records[0].AttendanceRate)
		assert.Equal(t, 0, resp.Records[0].TotalAbsent)
	})

	t.Run("negative invalid month", func(t *testing.T) {
		_, err := report.NewService(&fakeReportRepository{}, time.UTC).Monthly(ctx, report.MonthlyFilter{Year: 2025, Month: 13})

		assert.ErrorIs(t, err, reporterrors.ErrInvalidMonth)
	})
}
