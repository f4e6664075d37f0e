package locationerrors

import (
	"net/http"

	"github.com/jagatraya2508/absensi/internal/shared/apperror"
)

var (
	ErrLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Lokasi tidak ditemukan",
		http.StatusNotFound,
	)
	ErrInvalidLocationID = apperror.New(
		apperror.CodeValidationFailed,
		"ID lokasi tidak valid",
		http.StatusBadRequest,
	)
	ErrInvalidRadius = apperror.New(
		apperror.CodeValidationFailed,
		"Radius harus lebih dari 0",
		http.StatusBadRequest,
	)
)
