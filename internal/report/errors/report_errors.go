package reporterrors

import "github.com/jagatraya2508/absensi/internal/shared/apperror"

var (
	ErrInvalidDate = apperror.InvalidField("date").
			WithMessage("Format tanggal harus YYYY-MM-DD")
	ErrInvalidMonth = apperror.InvalidField("month").
			WithMessage("Bulan harus antara 1 dan 12")
	ErrInvalidYear = apperror.InvalidField("year").
			WithMessage("Tahun tidak valid")
)
