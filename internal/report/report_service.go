package report

import (
	"context"
	"time"

	reporterrors "github.com/jagatraya2508/absensi/internal/report/errors"
	"github.com/jagatraya2508/absensi/internal/shared/dateutil"

	"go.uber.org/zap"
)

type Service interface {
	Daily(ctx context.Context, filter DailyFilter) (DailyReport, error)
	Monthly(ctx context.Context, filter MonthlyFilter) (MonthlyReport, error)
}

type service struct {
	repo   Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, loc: loc, now: time.Now, logger: l}
}

func (s *service) Daily(ctx context.Context, filter DailyFilter) (DailyReport, error) {
	day := dateutil.DayOf(s.now(), s.loc)
	if filter.Date != "" {
		d, err := dateutil.Parse(filter.Date)
		if err != nil {
			return DailyReport{}, reporterrors.ErrInvalidDate
		}
		day = d
	}

	rows, err := s.repo.Daily(ctx, day)
	if err != nil {
		s.logger.Error("daily report failed", zap.String("date", dateutil.Format(day)), zap.Error(err))
		return DailyReport{}, err
	}
	if rows == nil {
		rows = []DailyRow{}
	}
	return DailyReport{
		Summary: Summarize(dateutil.Format(day), rows),
		Records: rows,
	}, nil
}

func (s *service) Monthly(ctx context.Context, filter MonthlyFilter) (MonthlyReport, error) {
	local := s.now().In(s.loc)
	year, month := filter.Year, time.Month(filter.Month)
	if year == 0 {
		year = local.Year()
	}
	if filter.Month == 0 {
		month = local.Month()
	}
	if year < 1970 || year > 9999 {
		return MonthlyReport{}, reporterrors.ErrInvalidYear
	}
	if month < time.January || month > time.December {
		return MonthlyReport{}, reporterrors.ErrInvalidMonth
	}

	start, end := MonthBounds(year, month)
	counts, err := s.repo.Monthly(ctx, start, end)
	if err != nil {
		s.logger.Error("monthly report failed",
			zap.Int("year", year),
			zap.Int("month", int(month)),
			zap.Error(err),
		)
		return MonthlyReport{}, err
	}
	return BuildMonthly(year, month, counts), nil
}
