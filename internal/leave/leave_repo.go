package leave

import (
	"context"
	"database/sql"

	"github.com/jagatraya2508/absensi/internal/shared/connection"

	"gorm.io/gorm"
)

type ListQuery struct {
	UserID string
	Status string
	Offset int
	Limit  int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockUser(ctx context.Context, userID string) error
	FindQuotaRelevant(ctx context.Context, userID string, year int) ([]LeaveRequest, error)
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	UpdateDecision(ctx context.Context, l *LeaveRequest) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListByUser(ctx context.Context, userID, status string) ([]LeaveRequest, error)
	List(ctx context.Context, q ListQuery) ([]LeaveRequest, int64, error)
	CountPending(ctx context.Context) (int64, error)
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

// LockUser serializes quota checks for one user until the surrounding
// transaction ends.
func (r *repository) LockUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "leave_quota:"+userID).Error
}

func (r *repository) FindQuotaRelevant(ctx context.Context, userID string, year int) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("type = ?", TypeLeave).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("User", "Approver").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Approver").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateDecision writes the decision only while the row is still pending and
// reports whether it did.
func (r *repository) UpdateDecision(ctx context.Context, l *LeaveRequest) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", l.ID, StatusPending).
		Updates(map[string]any{
			"status":      l.Status,
			"approved_by": l.ApprovedBy,
			"admin_notes": l.AdminNotes,
			"updated_at":  l.UpdatedAt,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) ListByUser(ctx context.Context, userID, status string) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	q := r.db.WithContext(ctx).Preload("Approver").Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]LeaveRequest, int64, error) {
	base := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if q.UserID != "" {
		base = base.Where("user_id = ?", q.UserID)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []LeaveRequest
	err := base.Session(&gorm.Session{}).
		Preload("User").
		Preload("Approver").
		Order("created_at DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count, err
}
