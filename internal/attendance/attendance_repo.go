package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/jagatraya2508/absensi/internal/shared/connection"

	"gorm.io/gorm"
)

type HistoryQuery struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *AttendanceEvent) error
	FindByUserAndDay(ctx context.Context, userID string, day time.Time) ([]AttendanceEvent, error)
	FindHistory(ctx context.Context, q HistoryQuery) ([]AttendanceEvent, error)
	FindByID(ctx context.Context, id string) (*AttendanceEvent, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, e *AttendanceEvent) error {
	return r.db.WithContext(ctx).Omit("Location", "User").Create(e).Error
}

func (r *repository) FindByUserAndDay(ctx context.Context, userID string, day time.Time) ([]AttendanceEvent, error) {
	var rows []AttendanceEvent
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("user_id = ? AND attendance_date = ?", userID, day).
		Order("recorded_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindHistory(ctx context.Context, q HistoryQuery) ([]AttendanceEvent, error) {
	var rows []AttendanceEvent
	db := r.db.WithContext(ctx).
		Preload("Location").
		Preload("User")
	if q.UserID != "" {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.StartDate != nil {
		db = db.Where("attendance_date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		db = db.Where("attendance_date <= ?", *q.EndDate)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	err := db.Order("recorded_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*AttendanceEvent, error) {
	var e AttendanceEvent
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&AttendanceEvent{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
