package face

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, userID string) (*UserFace, error)
	FindAll(ctx context.Context) ([]UserFace, error)
	SaveDescriptor(ctx context.Context, userID string, d Descriptor, registeredAt time.Time, onlyIfEmpty bool) (bool, error)
	ClearDescriptor(ctx context.Context, userID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, userID string) (*UserFace, error) {
	var u UserFace
	err := r.db.WithContext(ctx).First(&u, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context) ([]UserFace, error) {
	var users []UserFace
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

// SaveDescriptor writes the profile. With onlyIfEmpty the row is only touched
// when no descriptor is stored yet, so two concurrent self registrations
// cannot both succeed.
func (r *repository) SaveDescriptor(ctx context.Context, userID string, d Descriptor, registeredAt time.Time, onlyIfEmpty bool) (bool, error) {
	q := r.db.WithContext(ctx).Model(&UserFace{}).Where("id = ?", userID)
	if onlyIfEmpty {
		q = q.Where("face_descriptor IS NULL")
	}
	res := q.Updates(map[string]any{
		"face_descriptor":    d,
		"face_registered_at": registeredAt,
	})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) ClearDescriptor(ctx context.Context, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&UserFace{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"face_descriptor":    gorm.Expr("NULL"),
			"face_registered_at": gorm.Expr("NULL"),
		})
	return res.RowsAffected > 0, res.Error
}
