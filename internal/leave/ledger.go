package leave

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jagatraya2508/absensi/internal/domain"
	leaveerrors "github.com/jagatraya2508/absensi/internal/leave/errors"
	"github.com/jagatraya2508/absensi/internal/shared/dateutil"

	"github.com/google/uuid"
)

const (
	AnnualQuota     = 12
	MinReasonLength = 10
)

func IsValidType(t string) bool {
	_, ok := TypeLabels[t]
	return ok
}

// DaysInclusive counts both endpoints. Partial days round up.
func DaysInclusive(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours()/24)) + 1
}

// UsedDays sums the span of every leave-type request that still holds quota
// and starts in year.
func UsedDays(requests []LeaveRequest, year int) int {
	used := 0
	for _, r := range requests {
		if r.Type != TypeLeave || r.StartDate.Year() != year {
			continue
		}
		if r.Status != StatusPending && r.Status != StatusApproved {
			continue
		}
		used += DaysInclusive(r.StartDate, r.EndDate)
	}
	return used
}

func Remaining(used int) int {
	return AnnualQuota - used
}

type CreateInput struct {
	Type            string
	StartDate       string
	EndDate         string
	ReplacementDate string
	Reason          string
}

type ValidatedCreate struct {
	Type            string
	StartDate       time.Time
	EndDate         time.Time
	ReplacementDate *time.Time
	Reason          string
}

// ValidateCreate checks type, dates, replacement date and reason, in that
// order, and returns the first failure.
func ValidateCreate(in CreateInput) (ValidatedCreate, error) {
	if !IsValidType(in.Type) {
		return ValidatedCreate{}, leaveerrors.ErrInvalidType
	}

	if strings.TrimSpace(in.StartDate) == "" || strings.TrimSpace(in.EndDate) == "" {
		return ValidatedCreate{}, leaveerrors.ErrDatesRequired
	}
	start, err := dateutil.Parse(strings.TrimSpace(in.StartDate))
	if err != nil {
		return ValidatedCreate{}, leaveerrors.ErrInvalidDate
	}
	end, err := dateutil.Parse(strings.TrimSpace(in.EndDate))
	if err != nil {
		return ValidatedCreate{}, leaveerrors.ErrInvalidDate
	}
	if start.After(end) {
		return ValidatedCreate{}, leaveerrors.ErrInvalidDateRange
	}

	var replacement *time.Time
	raw := strings.TrimSpace(in.ReplacementDate)
	if in.Type == TypeChangeOff && raw == "" {
		return ValidatedCreate{}, leaveerrors.ErrReplacementDateRequired
	}
	if raw != "" {
		d, err := dateutil.Parse(raw)
		if err != nil {
			return ValidatedCreate{}, leaveerrors.ErrInvalidReplacementDate
		}
		replacement = &d
	}

	reason := strings.TrimSpace(in.Reason)
	if utf8.RuneCountInString(reason) < MinReasonLength {
		return ValidatedCreate{}, leaveerrors.ErrReasonTooShort
	}

	return ValidatedCreate{
		Type:            in.Type,
		StartDate:       start,
		EndDate:         end,
		ReplacementDate: replacement,
		Reason:          reason,
	}, nil
}

// StatusPatch is an admin decision on a pending request.
type StatusPatch struct {
	Status     string
	AdminNotes *string
	ApprovedBy uuid.UUID
}

func IsDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// ApplyStatusPatch returns the decided request. Only pending requests can be
// decided, and approved_by is stamped for rejections too.
func ApplyStatusPatch(req LeaveRequest, patch StatusPatch, now time.Time) (LeaveRequest, error) {
	if !IsDecision(patch.Status) {
		return LeaveRequest{}, leaveerrors.ErrInvalidStatus
	}
	if req.Status != StatusPending {
		return LeaveRequest{}, leaveerrors.ErrAlreadyProcessed
	}

	approver := patch.ApprovedBy
	req.Status = patch.Status
	req.ApprovedBy = &approver
	req.AdminNotes = nil
	if patch.AdminNotes != nil && strings.TrimSpace(*patch.AdminNotes) != "" {
		notes := strings.TrimSpace(*patch.AdminNotes)
		req.AdminNotes = &notes
	}
	req.UpdatedAt = now
	return req, nil
}

// CanDelete lets admins delete anything and owners delete while pending.
func CanDelete(req LeaveRequest, identity domain.Identity) error {
	if identity.IsAdmin() {
		return nil
	}
	if req.UserID.String() != identity.UserID {
		return leaveerrors.ErrForbidden
	}
	if req.Status != StatusPending {
		return leaveerrors.ErrNotPending
	}
	return nil
}

func CanRead(req LeaveRequest, identity domain.Identity) error {
	if identity.IsAdmin() || req.UserID.String() == identity.UserID {
		return nil
	}
	return leaveerrors.ErrForbidden
}
