package offday

import (
	"context"
	"database/sql"
	"time"

	"github.com/jagatraya2508/absensi/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *OffDay) error
	InsertIgnore(ctx context.Context, days []OffDay) (int64, error)
	List(ctx context.Context, userID string, start, end *time.Time) ([]OffDay, error)
	Exists(ctx context.Context, userID string, day time.Time) (bool, error)
	DeleteByUserDate(ctx context.Context, userID string, day time.Time) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
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

func (r *repository) Create(ctx context.Context, o *OffDay) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// InsertIgnore skips dates the user already has and reports how many rows
// were actually inserted.
func (r *repository) InsertIgnore(ctx context.Context, days []OffDay) (int64, error) {
	if len(days) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "off_date"}},
			DoNothing: true,
		}).
		Create(&days)
	return res.RowsAffected, res.Error
}

// List returns off-days ordered by date. An empty userID lists every user.
func (r *repository) List(ctx context.Context, userID string, start, end *time.Time) ([]OffDay, error) {
	var days []OffDay
	q := r.db.WithContext(ctx)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if start != nil {
		q = q.Where("off_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("off_date <= ?", *end)
	}
	err := q.Order("off_date ASC").Find(&days).Error
	return days, err
}

func (r *repository) Exists(ctx context.Context, userID string, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OffDay{}).
		Where("user_id = ? AND off_date = ?", userID, day).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DeleteByUserDate(ctx context.Context, userID string, day time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&OffDay{}, "user_id = ? AND off_date = ?", userID, day)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&OffDay{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
