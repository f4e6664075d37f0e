package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Data tidak ditemukan",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"Akses ditolak",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Autentikasi diperlukan",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeValidationFailed,
		"Input tidak valid",
		http.StatusBadRequest,
	)
)

// RequiredField builds a validation error for a missing field.
func RequiredField(field string) *AppError {
	return New(CodeValidationFailed, field+" wajib diisi", http.StatusBadRequest).
		WithDetails(map[string]string{"field": field, "rule": "required"})
}

// InvalidField builds a validation error for a field that failed a rule.
func InvalidField(field string) *AppError {
	return New(CodeValidationFailed, field+" tidak valid", http.StatusBadRequest).
		WithDetails(map[string]string{"field": field, "rule": "invalid"})
}
