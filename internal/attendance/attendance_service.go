package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/jagatraya2508/absensi/internal/attendance/errors"
	"github.com/jagatraya2508/absensi/internal/domain"
	"github.com/jagatraya2508/absensi/internal/events"
	"github.com/jagatraya2508/absensi/internal/face"
	"github.com/jagatraya2508/absensi/internal/location"
	"github.com/jagatraya2508/absensi/internal/messaging/kafka"
	"github.com/jagatraya2508/absensi/internal/offday"
	"github.com/jagatraya2508/absensi/internal/shared/contextutil"
	"github.com/jagatraya2508/absensi/internal/shared/dateutil"
	"github.com/jagatraya2508/absensi/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 50

type LocationSource interface {
	ListActive(ctx context.Context) ([]location.Location, error)
}

type OffDaySource interface {
	IsOffDay(ctx context.Context, userID string, day time.Time) (bool, error)
	ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]offday.OffDay, error)
}

type FaceVerifier interface {
	VerifyForCheckIn(ctx context.Context, userID string, d face.Descriptor) error
}

type MetricsRecorder interface {
	AttendanceRecorded(eventType, geofenceStatus string)
}

type Dependencies struct {
	DB        *sql.DB
	Repo      Repository
	Outbox    kafka.OutboxRepository
	Locations LocationSource
	OffDays   OffDaySource
	Faces     FaceVerifier
	Store     storage.Store
	Metrics   MetricsRecorder
	Timezone  *time.Location
	Now       func() time.Time
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, identity domain.Identity, req SubmitRequest) (SubmitResponse, error)
	CheckOut(ctx context.Context, identity domain.Identity, req SubmitRequest) (SubmitResponse, error)
	Today(ctx context.Context, identity domain.Identity) (TodayResponse, error)
	History(ctx context.Context, identity domain.Identity, filter HistoryFilter) ([]HistoryRecord, error)
	Delete(ctx context.Context, identity domain.Identity, id string) error
}

type service struct {
	deps   Dependencies
	logger *zap.Logger
}

func NewService(deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if deps.Timezone == nil {
		deps.Timezone = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{deps: deps, logger: l}
}

func (s *service) CheckIn(ctx context.Context, identity domain.Identity, req SubmitRequest) (SubmitResponse, error) {
	return s.submit(ctx, identity, req, TypeCheckIn)
}

func (s *service) CheckOut(ctx context.Context, identity domain.Identity, req SubmitRequest) (SubmitResponse, error) {
	return s.submit(ctx, identity, req, TypeCheckOut)
}

func (s *service) submit(ctx context.Context, identity domain.Identity, req SubmitRequest, eventType string) (SubmitResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := s.logger.With(
		zap.String("request_id", rid),
		zap.String("user_id", identity.UserID),
		zap.String("type", eventType),
	)
	log.Debug("attendance submit requested")

	userUUID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return SubmitResponse{}, attendanceerrors.ErrInvalidUserID
	}
	if req.PhotoRef == "" {
		return SubmitResponse{}, attendanceerrors.ErrMissingPhoto
	}
	if req.Latitude == nil || req.Longitude == nil {
		return SubmitResponse{}, attendanceerrors.ErrMissingCoordinates
	}

	if s.deps.Faces != nil {
		if err := s.deps.Faces.VerifyForCheckIn(ctx, identity.UserID, req.FaceDescriptor); err != nil {
			log.Warn("attendance face verification failed", zap.Error(err))
			return SubmitResponse{}, err
		}
	}

	now := s.deps.Now()
	day := dateutil.DayOf(now, s.deps.Timezone)

	today, err := s.deps.Repo.FindByUserAndDay(ctx, identity.UserID, day)
	if err != nil {
		log.Error("attendance load today failed", zap.Error(err))
		return SubmitResponse{}, err
	}
	if err := checkTransition(today, eventType, day); err != nil {
		log.Warn("attendance transition rejected", zap.Error(err))
		return SubmitResponse{}, err
	}

	active, err := s.deps.Locations.ListActive(ctx)
	if err != nil {
		log.Error("attendance load locations failed", zap.Error(err))
		return SubmitResponse{}, err
	}
	point := location.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	ref := location.ResolveReference(point, req.LocationID, active)

	e := &AttendanceEvent{
		ID:             uuid.New(),
		UserID:         userUUID,
		Type:           eventType,
		RecordedAt:     now.UTC(),
		AttendanceDate: day,
		Latitude:       point.Latitude,
		Longitude:      point.Longitude,
		DistanceMeters: ref.Distance,
		IsValid:        ref.Valid,
		GeofenceStatus: string(ref.Status),
		PhotoRef:       req.PhotoRef,
		Notes:          req.Notes,
	}
	var locationName *string
	if ref.Location != nil {
		id := ref.Location.ID
		name := ref.Location.Name
		e.LocationID = &id
		locationName = &name
	}

	if err := s.persist(ctx, rid, e, locationName); err != nil {
		mapped := mapPersistError(err, eventType)
		if mapped != err {
			log.Warn("attendance duplicate lost race", zap.Error(err))
		} else {
			log.Error("attendance persist failed", zap.Error(err))
		}
		return SubmitResponse{}, mapped
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.AttendanceRecorded(eventType, e.GeofenceStatus)
	}
	log.Info("attendance submit success",
		zap.String("attendance_id", e.ID.String()),
		zap.String("geofence_status", e.GeofenceStatus),
		zap.Bool("is_valid", e.IsValid),
	)

	resp := mapToResponse(*e)
	resp.LocationName = locationName
	return SubmitResponse{
		AttendanceResponse: resp,
		Message:            submitMessage(eventType, ref),
	}, nil
}

func checkTransition(today []AttendanceEvent, eventType string, day time.Time) error {
	switch eventType {
	case TypeCheckIn:
		if HasEventToday(today, TypeCheckIn, day) {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
	case TypeCheckOut:
		if !HasEventToday(today, TypeCheckIn, day) {
			return attendanceerrors.ErrNotCheckedIn
		}
		if HasEventToday(today, TypeCheckOut, day) {
			return attendanceerrors.ErrAlreadyCheckedOut
		}
	}
	return nil
}

func (s *service) persist(ctx context.Context, rid string, e *AttendanceEvent, locationName *string) error {
	tx, err := s.deps.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.deps.Repo.WithTx(tx).Create(ctx, e); err != nil {
		return err
	}

	if s.deps.Outbox != nil {
		payload := events.AttendanceRecordedEvent{
			EventType:      events.AttendanceRecordedEventType,
			RequestID:      rid,
			AttendanceID:   e.ID.String(),
			UserID:         e.UserID.String(),
			Type:           e.Type,
			IsValid:        e.IsValid,
			GeofenceStatus: e.GeofenceStatus,
			DistanceMeters: roundDistance(e.DistanceMeters),
			LocationName:   locationName,
			OccurredAt:     e.RecordedAt,
		}
		outboxEvent, err := kafka.NewOutboxEvent(rid, "attendance", e.ID.String(), payload.EventType, events.AttendanceRecordedTopic, payload)
		if err != nil {
			return err
		}
		if err := s.deps.Outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *service) Today(ctx context.Context, identity domain.Identity) (TodayResponse, error) {
	day := dateutil.DayOf(s.deps.Now(), s.deps.Timezone)

	rows, err := s.deps.Repo.FindByUserAndDay(ctx, identity.UserID, day)
	if err != nil {
		s.logger.Error("attendance today failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return TodayResponse{}, err
	}

	resp := TodayResponse{Date: dateutil.Format(day)}
	if e := findEvent(rows, TypeCheckIn); e != nil {
		r := mapToResponse(*e)
		resp.CheckedIn, resp.CheckIn = true, &r
	}
	if e := findEvent(rows, TypeCheckOut); e != nil {
		r := mapToResponse(*e)
		resp.CheckedOut, resp.CheckOut = true, &r
	}

	if s.deps.OffDays != nil {
		isOff, err := s.deps.OffDays.IsOffDay(ctx, identity.UserID, day)
		if err != nil {
			s.logger.Error("attendance today off day lookup failed", zap.String("user_id", identity.UserID), zap.Error(err))
			return TodayResponse{}, err
		}
		resp.IsOffDay = isOff
	}
	return resp, nil
}

func (s *service) History(ctx context.Context, identity domain.Identity, filter HistoryFilter) ([]HistoryRecord, error) {
	target := historyTarget(identity, filter.UserID)
	if target != "" {
		if _, err := uuid.Parse(target); err != nil {
			return nil, attendanceerrors.ErrInvalidUserID
		}
	}

	start, err := optionalDate(filter.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := optionalDate(filter.EndDate)
	if err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := s.deps.Repo.FindHistory(ctx, HistoryQuery{
		UserID:    target,
		StartDate: start,
		EndDate:   end,
		Limit:     limit,
	})
	if err != nil {
		s.logger.Error("attendance history failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return nil, err
	}

	records := make([]HistoryRecord, len(rows))
	for i, e := range rows {
		records[i] = eventRecord(e)
	}

	var offRecords []HistoryRecord
	if target != "" && s.deps.OffDays != nil {
		days, err := s.deps.OffDays.ListByUser(ctx, target, start, end)
		if err != nil {
			return nil, err
		}
		offRecords = make([]HistoryRecord, len(days))
		for i, o := range days {
			offRecords[i] = offDayRecord(o, s.deps.Timezone)
		}
	}

	return MergeHistory(records, offRecords), nil
}

// historyTarget resolves whose history is read. An empty result means all
// users and is only possible for admins.
func historyTarget(identity domain.Identity, requested string) string {
	if !identity.IsAdmin() {
		return identity.UserID
	}
	if requested == "" || requested == "all" {
		return ""
	}
	return requested
}

func (s *service) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if !identity.IsAdmin() {
		return attendanceerrors.ErrDeleteForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrAttendanceNotFound
	}

	e, err := s.deps.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrAttendanceNotFound
		}
		s.logger.Error("attendance delete lookup failed", zap.String("attendance_id", id), zap.Error(err))
		return err
	}

	deleted, err := s.deps.Repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("attendance delete failed", zap.String("attendance_id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return attendanceerrors.ErrAttendanceNotFound
	}

	if s.deps.Store != nil && e.PhotoRef != "" {
		if err := s.deps.Store.Delete(ctx, e.PhotoRef); err != nil {
			s.logger.Warn("attendance photo cleanup failed",
				zap.String("attendance_id", id),
				zap.String("photo_ref", e.PhotoRef),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("attendance delete success",
		zap.String("attendance_id", id),
		zap.String("deleted_by", identity.UserID),
	)
	return nil
}

func optionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	d, err := dateutil.Parse(v)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	return &d, nil
}

func mapToResponse(e AttendanceEvent) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             e.ID.String(),
		UserID:         e.UserID.String(),
		Type:           e.Type,
		RecordedAt:     e.RecordedAt.Format(time.RFC3339),
		AttendanceDate: dateutil.Format(e.AttendanceDate),
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		DistanceMeters: roundDistance(e.DistanceMeters),
		IsValid:        e.IsValid,
		GeofenceStatus: e.GeofenceStatus,
		PhotoRef:       e.PhotoRef,
		Notes:          e.Notes,
	}
	if e.LocationID != nil {
		v := e.LocationID.String()
		resp.LocationID = &v
	}
	if e.Location != nil {
		name := e.Location.Name
		resp.LocationName = &name
	}
	return resp
}
