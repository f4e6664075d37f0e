package location

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	locationerrors "github.com/jagatraya2508/absensi/internal/location/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	ActiveLocationsKey = "locations:active"
	activeCacheTTL     = 10 * time.Minute
)

//go:generate mockgen -source=location_service.go -destination=mock/location_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	GetAll(ctx context.Context) ([]LocationResponse, error)
	GetByID(ctx context.Context, id string) (LocationResponse, error)
	Update(ctx context.Context, id string, req UpdateLocationRequest) (LocationResponse, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]Location, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("location.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error) {
	s.logger.Debug("create location requested", zap.String("name", req.Name))

	radius := float64(DefaultRadiusMeters)
	if req.RadiusMeters != nil {
		radius = *req.RadiusMeters
	}
	if radius <= 0 {
		return LocationResponse{}, locationerrors.ErrInvalidRadius
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	l := &Location{
		ID:           uuid.New(),
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		RadiusMeters: radius,
		IsActive:     active,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create location persist failed", zap.Error(err))
		return LocationResponse{}, err
	}

	s.invalidateActive(ctx)
	s.logger.Info("create location success", zap.String("location_id", l.ID.String()))
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LocationResponse, error) {
	locations, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all locations failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(locations), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LocationResponse, error) {
	l, err := s.find(ctx, id)
	if err != nil {
		return LocationResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLocationRequest) (LocationResponse, error) {
	s.logger.Debug("update location requested", zap.String("location_id", id))

	l, err := s.find(ctx, id)
	if err != nil {
		return LocationResponse{}, err
	}

	updated := applyUpdate(*l, req)
	if updated.RadiusMeters <= 0 {
		return LocationResponse{}, locationerrors.ErrInvalidRadius
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.logger.Error("update location persist failed", zap.String("location_id", id), zap.Error(err))
		return LocationResponse{}, err
	}

	s.invalidateActive(ctx)
	s.logger.Info("update location success", zap.String("location_id", id))
	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return locationerrors.ErrInvalidLocationID
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete location failed", zap.String("location_id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return locationerrors.ErrLocationNotFound
	}

	s.invalidateActive(ctx)
	s.logger.Info("delete location success", zap.String("location_id", id))
	return nil
}

// ListActive serves the geofence reference set, cached in redis.
func (s *service) ListActive(ctx context.Context) ([]Location, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ActiveLocationsKey).Result(); err == nil {
			var locations []Location
			if json.Unmarshal([]byte(cached), &locations) == nil {
				return locations, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ActiveLocationsKey, func() (interface{}, error) {
		locations, err := s.repo.FindActive(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(locations); err == nil {
				if err := s.rdb.Set(ctx, ActiveLocationsKey, payload, activeCacheTTL).Err(); err != nil {
					s.logger.Warn("cache active locations failed", zap.Error(err))
				}
			}
		}
		return locations, nil
	})
	if err != nil {
		s.logger.Error("list active locations failed", zap.Error(err))
		return nil, err
	}

	return v.([]Location), nil
}

func (s *service) find(ctx context.Context, id string) (*Location, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, locationerrors.ErrInvalidLocationID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, locationerrors.ErrLocationNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *service) invalidateActive(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ActiveLocationsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate active locations cache",
			zap.Error(err),
			zap.String("key", ActiveLocationsKey),
		)
	}
}

func applyUpdate(l Location, req UpdateLocationRequest) Location {
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Address != nil {
		l.Address = req.Address
	}
	if req.Latitude != nil {
		l.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		l.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	return l
}

func mapToResponse(l Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID.String(),
		Name:         l.Name,
		Address:      l.Address,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		RadiusMeters: l.RadiusMeters,
		IsActive:     l.IsActive,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(locations []Location) []LocationResponse {
	resp := make([]LocationResponse, len(locations))
	for i, l := range locations {
		resp[i] = mapToResponse(l)
	}
	return resp
}

// MapToListResponse is used by handlers that render cached active locations.
func MapToListResponse(locations []Location) []LocationResponse {
	return mapToListResponse(locations)
}
