package report

import (
	"context"
	"time"

	"github.com/jagatraya2508/absensi/internal/domain"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	Daily(ctx context.Context, day time.Time) ([]DailyRow, error)
	Monthly(ctx context.Context, start, end time.Time) ([]MonthlyCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Daily(ctx context.Context, day time.Time) ([]DailyRow, error) {
	var rows []DailyRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id AS user_id,
			u.name,
			ci.recorded_at AS check_in_time,
			ci.is_valid AS check_in_valid,
			co.recorded_at AS check_out_time,
			co.is_valid AS check_out_valid,
			l.name AS location_name
		FROM users u
		LEFT JOIN attendances ci
			ON ci.user_id = u.id AND ci.type = 'check_in' AND ci.attendance_date = @day
		LEFT JOIN attendances co
			ON co.user_id = u.id AND co.type = 'check_out' AND co.attendance_date = @day
		LEFT JOIN attendance_locations l
			ON l.id = COALESCE(ci.location_id, co.location_id)
		WHERE u.role = @role
		ORDER BY u.name
	`, map[string]any{"day": day, "role": domain.RoleEmployee}).Scan(&rows).Error
	return rows, err
}

func (r *repository) Monthly(ctx context.Context, start, end time.Time) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id AS user_id,
			u.name,
			COUNT(DISTINCT CASE WHEN a.type = 'check_in' THEN a.attendance_date END) AS total_present,
			COUNT(DISTINCT CASE WHEN a.type = 'check_in' AND a.is_valid THEN a.attendance_date END) AS valid_checkins,
			COUNT(DISTINCT CASE WHEN a.type = 'check_in' AND NOT a.is_valid THEN a.attendance_date END) AS invalid_checkins
		FROM users u
		LEFT JOIN attendances a
			ON a.user_id = u.id AND a.attendance_date BETWEEN @start AND @end
		WHERE u.role = @role
		GROUP BY u.id, u.name
		ORDER BY u.name
	`, map[string]any{"start": start, "end": end, "role": domain.RoleEmployee}).Scan(&rows).Error
	return rows, err
}
