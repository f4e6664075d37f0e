package offday

import (
	"context"
	"database/sql"
	"time"

	"github.com/jagatraya2508/absensi/internal/domain"
	offdayerrors "github.com/jagatraya2508/absensi/internal/offday/errors"
	"github.com/jagatraya2508/absensi/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const selfLookbackDays = 30

type Service interface {
	ListMine(ctx context.Context, identity domain.Identity) ([]OffDayResponse, error)
	AddMine(ctx context.Context, identity domain.Identity, req AddMyOffDaysRequest) (AddOffDaysResponse, error)
	DeleteMine(ctx context.Context, identity domain.Identity, date string) error
	List(ctx context.Context, filter ListOffDaysFilter) ([]OffDayResponse, error)
	Create(ctx context.Context, req CreateOffDayRequest) (OffDayResponse, error)
	Delete(ctx context.Context, id string) error

	IsOffDay(ctx context.Context, userID string, day time.Time) (bool, error)
	ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]OffDay, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("offday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("offday.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{db: db, repo: repo, loc: loc, now: time.Now, logger: l}
}

func (s *service) ListMine(ctx context.Context, identity domain.Identity) ([]OffDayResponse, error) {
	from := dateutil.DayOf(s.now(), s.loc).AddDate(0, 0, -selfLookbackDays)
	days, err := s.ListByUser(ctx, identity.UserID, &from, nil)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(days), nil
}

func (s *service) AddMine(ctx context.Context, identity domain.Identity, req AddMyOffDaysRequest) (AddOffDaysResponse, error) {
	s.logger.Debug("add off days requested",
		zap.String("user_id", identity.UserID),
		zap.Int("dates", len(req.Dates)),
	)

	if len(req.Dates) == 0 {
		return AddOffDaysResponse{}, offdayerrors.ErrDatesRequired
	}
	userUUID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return AddOffDaysResponse{}, offdayerrors.ErrInvalidUserID
	}

	days := make([]OffDay, 0, len(req.Dates))
	for _, raw := range req.Dates {
		d, err := dateutil.Parse(raw)
		if err != nil {
			return AddOffDaysResponse{}, offdayerrors.ErrInvalidDate
		}
		days = append(days, OffDay{ID: uuid.New(), UserID: userUUID, OffDate: d})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add off days begin tx failed", zap.Error(err))
		return AddOffDaysResponse{}, err
	}
	defer tx.Rollback()

	inserted, err := s.repo.WithTx(tx).InsertIgnore(ctx, days)
	if err != nil {
		s.logger.Error("add off days persist failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return AddOffDaysResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("add off days commit failed", zap.Error(err))
		return AddOffDaysResponse{}, err
	}

	s.logger.Info("add off days success",
		zap.String("user_id", identity.UserID),
		zap.Int64("inserted", inserted),
	)
	return AddOffDaysResponse{Inserted: inserted}, nil
}

func (s *service) DeleteMine(ctx context.Context, identity domain.Identity, date string) error {
	d, err := dateutil.Parse(date)
	if err != nil {
		return offdayerrors.ErrInvalidDate
	}

	deleted, err := s.repo.DeleteByUserDate(ctx, identity.UserID, d)
	if err != nil {
		s.logger.Error("delete own off day failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return err
	}
	if !deleted {
		return offdayerrors.ErrOffDayNotFound
	}
	return nil
}

func (s *service) List(ctx context.Context, filter ListOffDaysFilter) ([]OffDayResponse, error) {
	start, err := optionalDate(filter.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := optionalDate(filter.EndDate)
	if err != nil {
		return nil, err
	}

	days, err := s.repo.List(ctx, filter.UserID, start, end)
	if err != nil {
		s.logger.Error("list off days failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(days), nil
}

func (s *service) Create(ctx context.Context, req CreateOffDayRequest) (OffDayResponse, error) {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return OffDayResponse{}, offdayerrors.ErrInvalidUserID
	}
	d, err := dateutil.Parse(req.OffDate)
	if err != nil {
		return OffDayResponse{}, offdayerrors.ErrInvalidDate
	}

	o := &OffDay{ID: uuid.New(), UserID: userUUID, OffDate: d}
	if err := s.repo.Create(ctx, o); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("create off day persist failed", zap.Error(err))
		} else {
			s.logger.Warn("create off day duplicate",
				zap.String("user_id", req.UserID),
				zap.String("off_date", req.OffDate),
			)
		}
		return OffDayResponse{}, mapped
	}

	s.logger.Info("create off day success",
		zap.String("off_day_id", o.ID.String()),
		zap.String("user_id", req.UserID),
	)
	return mapToResponse(*o), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return offdayerrors.ErrInvalidOffDayID
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error("delete off day failed", zap.String("off_day_id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return offdayerrors.ErrOffDayNotFound
	}
	return nil
}

func (s *service) IsOffDay(ctx context.Context, userID string, day time.Time) (bool, error) {
	return s.repo.Exists(ctx, userID, day)
}

func (s *service) ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]OffDay, error) {
	days, err := s.repo.List(ctx, userID, start, end)
	if err != nil {
		s.logger.Error("list user off days failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return days, nil
}

func optionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	d, err := dateutil.Parse(v)
	if err != nil {
		return nil, offdayerrors.ErrInvalidDate
	}
	return &d, nil
}

func mapToResponse(o OffDay) OffDayResponse {
	return OffDayResponse{
		ID:        o.ID.String(),
		UserID:    o.UserID.String(),
		OffDate:   dateutil.Format(o.OffDate),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(days []OffDay) []OffDayResponse {
	resp := make([]OffDayResponse, len(days))
	for i, o := range days {
		resp[i] = mapToResponse(o)
	}
	return resp
}
