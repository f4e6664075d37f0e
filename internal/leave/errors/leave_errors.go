package leaveerrors

import (
	"fmt"
	"net/http"

	"github.com/jagatraya2508/absensi/internal/shared/apperror"
)

var (
	ErrInvalidType = apperror.InvalidField("type").
			WithMessage("Jenis izin tidak valid")
	ErrDatesRequired = apperror.RequiredField("start_date").
				WithMessage("Tanggal mulai dan selesai harus diisi")
	ErrInvalidDate = apperror.InvalidField("start_date").
			WithMessage("Format tanggal harus YYYY-MM-DD")
	ErrInvalidDateRange = apperror.InvalidField("end_date").
				WithMessage("Tanggal mulai tidak boleh lebih dari tanggal selesai")
	ErrReplacementDateRequired = apperror.RequiredField("replacement_date").
					WithMessage("Tanggal pengganti harus diisi untuk tukar libur")
	ErrInvalidReplacementDate = apperror.InvalidField("replacement_date").
					WithMessage("Format tanggal pengganti harus YYYY-MM-DD")
	ErrReasonTooShort = apperror.InvalidField("reason").
				WithMessage("Alasan harus diisi minimal 10 karakter").
				WithDetails(map[string]any{"field": "reason", "rule": "min", "min": 10})
	ErrInvalidStatus = apperror.InvalidField("status").
				WithMessage("Status tidak valid")
	ErrInvalidUserID = apperror.InvalidField("user_id").
				WithMessage("ID user tidak valid")
	ErrInvalidYear = apperror.InvalidField("year").
			WithMessage("Tahun tidak valid")

	ErrQuotaExceeded = apperror.New(
		apperror.CodeQuotaExceeded,
		"Sisa cuti tidak mencukupi",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pengajuan tidak ditemukan",
		http.StatusNotFound,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeAlreadyProcessed,
		"Pengajuan sudah diproses sebelumnya",
		http.StatusConflict,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Tidak memiliki akses",
		http.StatusForbidden,
	)
	ErrNotPending = apperror.New(
		apperror.CodeNotPending,
		"Hanya pengajuan pending yang bisa dihapus",
		http.StatusForbidden,
	)
)

// QuotaExceeded carries the numbers the client shows next to the message.
func QuotaExceeded(year, remaining, requested int) *apperror.AppError {
	return ErrQuotaExceeded.
		WithMessage(fmt.Sprintf("Sisa cuti Anda tahun %d adalah %d hari. Anda mengajukan %d hari.", year, remaining, requested)).
		WithDetails(map[string]int{"remaining": remaining, "requested": requested})
}
