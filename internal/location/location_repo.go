package location

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=location_repo.go -destination=mock/location_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, l *Location) error
	FindAll(ctx context.Context) ([]Location, error)
	FindActive(ctx context.Context) ([]Location, error)
	FindByID(ctx context.Context, id string) (*Location, error)
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&locations).Error
	return locations, err
}

func (r *repository) FindActive(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&locations).Error
	return locations, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Location, error) {
	var l Location
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Location{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
