package offday

import (
	"errors"

	offdayerrors "github.com/jagatraya2508/absensi/internal/offday/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return offdayerrors.ErrOffDayExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_off_days_user_date" {
		return offdayerrors.ErrOffDayExists
	}
	return err
}
