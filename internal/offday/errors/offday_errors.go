package offdayerrors

import (
	"net/http"

	"github.com/jagatraya2508/absensi/internal/shared/apperror"
)

var (
	ErrOffDayNotFound = apperror.New(
		apperror.CodeNotFound,
		"Hari libur tidak ditemukan",
		http.StatusNotFound,
	)
	ErrOffDayExists = apperror.New(
		apperror.CodeDuplicateOperation,
		"Hari libur sudah terdaftar untuk tanggal tersebut",
		http.StatusConflict,
	)
	ErrInvalidDate     = apperror.InvalidField("off_date").WithMessage("Format tanggal harus YYYY-MM-DD")
	ErrInvalidUserID   = apperror.InvalidField("user_id").WithMessage("ID user tidak valid")
	ErrInvalidOffDayID = apperror.InvalidField("id").WithMessage("ID hari libur tidak valid")
	ErrDatesRequired   = apperror.RequiredField("dates")
)
