package faceerrors

import (
	"fmt"
	"net/http"

	"github.com/jagatraya2508/absensi/internal/shared/apperror"
)

var (
	ErrInvalidDescriptorLength = apperror.New(
		apperror.CodeInvalidDescriptorLength,
		"Face descriptor harus berisi 128 nilai",
		http.StatusBadRequest,
	)
	ErrAlreadyRegistered = apperror.New(
		apperror.CodeAlreadyRegistered,
		"Wajah sudah terdaftar",
		http.StatusConflict,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User tidak ditemukan",
		http.StatusNotFound,
	)
	ErrNotRegistered = apperror.New(
		apperror.CodeNotFound,
		"Wajah belum terdaftar",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeValidationFailed,
		"ID user tidak valid",
		http.StatusBadRequest,
	)
	ErrDescriptorRequired = apperror.RequiredField("descriptor")

	ErrFaceMismatch = apperror.New(
		apperror.CodeValidationFailed,
		"Wajah tidak cocok",
		http.StatusBadRequest,
	)
)

// FaceMismatch reports the measured similarity against the required minimum.
func FaceMismatch(similarity, minimum int) *apperror.AppError {
	return ErrFaceMismatch.
		WithMessage(fmt.Sprintf("Wajah tidak cocok (kemiripan %d%%, minimal %d%%)", similarity, minimum)).
		WithDetails(map[string]any{"field": "face_descriptor", "similarity": similarity, "minimum": minimum})
}
