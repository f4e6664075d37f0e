package attendance

import (
	"errors"

	attendanceerrors "github.com/jagatraya2508/absensi/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueDayConstraint = "uq_attendance_user_type_day"

// mapPersistError turns a lost insert race into the same duplicate error the
// gate reports.
func mapPersistError(err error, eventType string) error {
	if err == nil {
		return nil
	}

	duplicate := errors.Is(err, gorm.ErrDuplicatedKey)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueDayConstraint {
		duplicate = true
	}
	if !duplicate {
		return err
	}

	if eventType == TypeCheckOut {
		return attendanceerrors.ErrAlreadyCheckedOut
	}
	return attendanceerrors.ErrAlreadyCheckedIn
}
