package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jagatraya2508/absensi/internal/domain"
	"github.com/jagatraya2508/absensi/internal/events"
	leaveerrors "github.com/jagatraya2508/absensi/internal/leave/errors"
	"github.com/jagatraya2508/absensi/internal/messaging/kafka"
	"github.com/jagatraya2508/absensi/internal/shared/contextutil"
	"github.com/jagatraya2508/absensi/internal/shared/dateutil"
	"github.com/jagatraya2508/absensi/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Dependencies struct {
	DB       *sql.DB
	Repo     Repository
	Outbox   kafka.OutboxRepository
	Store    storage.Store
	Timezone *time.Location
	Now      func() time.Time
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, identity domain.Identity, req CreateLeaveRequest) (MutationResponse, error)
	UpdateStatus(ctx context.Context, identity domain.Identity, id string, req UpdateStatusRequest) (MutationResponse, error)
	Delete(ctx context.Context, identity domain.Identity, id string) error
	GetMy(ctx context.Context, identity domain.Identity, filter MyLeavesFilter) ([]LeaveResponse, error)
	Quota(ctx context.Context, identity domain.Identity, year int) (QuotaResponse, error)
	List(ctx context.Context, filter ListLeavesFilter) ([]LeaveResponse, int64, error)
	PendingCount(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, identity domain.Identity, id string) (LeaveResponse, error)
}

type service struct {
	deps   Dependencies
	logger *zap.Logger
}

func NewService(deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if deps.Timezone == nil {
		deps.Timezone = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{deps: deps, logger: l}
}

func (s *service) Create(ctx context.Context, identity domain.Identity, req CreateLeaveRequest) (MutationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := s.logger.With(
		zap.String("request_id", rid),
		zap.String("user_id", identity.UserID),
		zap.String("type", req.Type),
	)
	log.Debug("create leave requested",
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	userUUID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return MutationResponse{}, leaveerrors.ErrInvalidUserID
	}

	in, err := ValidateCreate(CreateInput{
		Type:            req.Type,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		ReplacementDate: req.ReplacementDate,
		Reason:          req.Reason,
	})
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return MutationResponse{}, err
	}

	tx, err := s.deps.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create leave begin tx failed", zap.Error(err))
		return MutationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.deps.Repo.WithTx(tx)
	if err := qtx.LockUser(ctx, identity.UserID); err != nil {
		log.Error("create leave lock failed", zap.Error(err))
		return MutationResponse{}, err
	}

	requested := DaysInclusive(in.StartDate, in.EndDate)
	if in.Type == TypeLeave {
		year := in.StartDate.Year()
		existing, err := qtx.FindQuotaRelevant(ctx, identity.UserID, year)
		if err != nil {
			log.Error("create leave quota lookup failed", zap.Error(err))
			return MutationResponse{}, err
		}
		remaining := Remaining(UsedDays(existing, year))
		if requested > remaining {
			log.Warn("create leave quota exceeded",
				zap.Int("year", year),
				zap.Int("remaining", remaining),
				zap.Int("requested", requested),
			)
			return MutationResponse{}, leaveerrors.QuotaExceeded(year, remaining, requested)
		}
	}

	now := s.deps.Now().UTC()
	l := &LeaveRequest{
		ID:              uuid.New(),
		UserID:          userUUID,
		Type:            in.Type,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Reason:          in.Reason,
		ReplacementDate: in.ReplacementDate,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.AttachmentRef != "" {
		ref := req.AttachmentRef
		l.AttachmentRef = &ref
	}

	if err := qtx.Create(ctx, l); err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return MutationResponse{}, err
	}
	if err := s.writeOutbox(ctx, tx, rid, events.LeaveRequestedEventType, *l, now); err != nil {
		log.Error("create leave outbox failed", zap.Error(err))
		return MutationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("create leave commit failed", zap.Error(err))
		return MutationResponse{}, err
	}

	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.Int("total_days", requested),
	)
	return MutationResponse{Message: "Pengajuan izin berhasil dibuat", Data: mapToResponse(*l)}, nil
}

func (s *service) UpdateStatus(ctx context.Context, identity domain.Identity, id string, req UpdateStatusRequest) (MutationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := s.logger.With(
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("admin_id", identity.UserID),
	)
	log.Debug("update leave status requested", zap.String("status", req.Status))

	if !identity.IsAdmin() {
		return MutationResponse{}, leaveerrors.ErrForbidden
	}
	if !IsDecision(req.Status) {
		return MutationResponse{}, leaveerrors.ErrInvalidStatus
	}
	adminUUID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return MutationResponse{}, leaveerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return MutationResponse{}, leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.deps.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update leave status begin tx failed", zap.Error(err))
		return MutationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.deps.Repo.WithTx(tx)
	current, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MutationResponse{}, leaveerrors.ErrLeaveNotFound
		}
		log.Error("update leave status lookup failed", zap.Error(err))
		return MutationResponse{}, err
	}

	now := s.deps.Now().UTC()
	decided, err := ApplyStatusPatch(*current, StatusPatch{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
		ApprovedBy: adminUUID,
	}, now)
	if err != nil {
		log.Warn("update leave status rejected", zap.String("current_status", current.Status), zap.Error(err))
		return MutationResponse{}, err
	}

	updated, err := qtx.UpdateDecision(ctx, &decided)
	if err != nil {
		log.Error("update leave status persist failed", zap.Error(err))
		return MutationResponse{}, err
	}
	if !updated {
		log.Warn("update leave status lost race")
		return MutationResponse{}, leaveerrors.ErrAlreadyProcessed
	}
	if err := s.writeOutbox(ctx, tx, rid, events.LeaveStatusChangedEventType, decided, now); err != nil {
		log.Error("update leave status outbox failed", zap.Error(err))
		return MutationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("update leave status commit failed", zap.Error(err))
		return MutationResponse{}, err
	}

	log.Info("update leave status success", zap.String("status", decided.Status))

	message := "Pengajuan ditolak"
	if decided.Status == StatusApproved {
		message = "Pengajuan disetujui"
	}
	return MutationResponse{Message: message, Data: mapToResponse(decided)}, nil
}

func (s *service) writeOutbox(ctx context.Context, tx *sql.Tx, rid, eventType string, l LeaveRequest, at time.Time) error {
	if s.deps.Outbox == nil {
		return nil
	}
	payload := events.LeaveLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		UserID:     l.UserID.String(),
		Type:       l.Type,
		Status:     l.Status,
		StartDate:  dateutil.Format(l.StartDate),
		EndDate:    dateutil.Format(l.EndDate),
		TotalDays:  DaysInclusive(l.StartDate, l.EndDate),
		Reason:     l.Reason,
		OccurredAt: at,
	}
	event, err := kafka.NewOutboxEvent(rid, "leave_request", l.ID.String(), eventType, events.LeaveLifecycleTopic, payload)
	if err != nil {
		return err
	}
	return s.deps.Outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrLeaveNotFound
	}

	l, err := s.deps.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("delete leave lookup failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if err := CanDelete(*l, identity); err != nil {
		s.logger.Warn("delete leave rejected",
			zap.String("leave_id", id),
			zap.String("user_id", identity.UserID),
			zap.String("status", l.Status),
			zap.Error(err),
		)
		return err
	}

	deleted, err := s.deps.Repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return leaveerrors.ErrLeaveNotFound
	}

	if s.deps.Store != nil && l.AttachmentRef != nil {
		if err := s.deps.Store.Delete(ctx, *l.AttachmentRef); err != nil {
			s.logger.Warn("delete leave attachment cleanup failed",
				zap.String("leave_id", id),
				zap.String("attachment_ref", *l.AttachmentRef),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("delete leave success",
		zap.String("leave_id", id),
		zap.String("deleted_by", identity.UserID),
	)
	return nil
}

func (s *service) GetMy(ctx context.Context, identity domain.Identity, filter MyLeavesFilter) ([]LeaveResponse, error) {
	rows, err := s.deps.Repo.ListByUser(ctx, identity.UserID, filter.Status)
	if err != nil {
		s.logger.Error("list own leaves failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Quota(ctx context.Context, identity domain.Identity, year int) (QuotaResponse, error) {
	if year == 0 {
		year = s.deps.Now().In(s.deps.Timezone).Year()
	}
	if year < 0 {
		return QuotaResponse{}, leaveerrors.ErrInvalidYear
	}

	rows, err := s.deps.Repo.FindQuotaRelevant(ctx, identity.UserID, year)
	if err != nil {
		s.logger.Error("leave quota lookup failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return QuotaResponse{}, err
	}
	used := UsedDays(rows, year)
	return QuotaResponse{
		Year:      year,
		Quota:     AnnualQuota,
		Used:      used,
		Remaining: Remaining(used),
	}, nil
}

func (s *service) List(ctx context.Context, filter ListLeavesFilter) ([]LeaveResponse, int64, error) {
	page, size := normalizePage(filter.Page, filter.PageSize)
	rows, total, err := s.deps.Repo.List(ctx, ListQuery{
		UserID: filter.UserID,
		Status: filter.Status,
		Offset: (page - 1) * size,
		Limit:  size,
	})
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(rows), total, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func (s *service) PendingCount(ctx context.Context) (int64, error) {
	return s.deps.Repo.CountPending(ctx)
}

func (s *service) GetByID(ctx context.Context, identity domain.Identity, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	l, err := s.deps.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if err := CanRead(*l, identity); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		UserID:        l.UserID.String(),
		Type:          l.Type,
		TypeLabel:     TypeLabels[l.Type],
		StartDate:     dateutil.Format(l.StartDate),
		EndDate:       dateutil.Format(l.EndDate),
		TotalDays:     DaysInclusive(l.StartDate, l.EndDate),
		Reason:        l.Reason,
		AttachmentRef: l.AttachmentRef,
		Status:        l.Status,
		AdminNotes:    l.AdminNotes,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.Format(time.RFC3339),
	}
	if l.ReplacementDate != nil {
		d := dateutil.Format(*l.ReplacementDate)
		resp.ReplacementDate = &d
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.User != nil {
		name := l.User.Name
		resp.EmployeeName = &name
	}
	if l.Approver != nil {
		name := l.Approver.Name
		resp.ApproverName = &name
	}
	return resp
}

func mapToListResponse(rows []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		resp[i] = mapToResponse(l)
	}
	return resp
}
