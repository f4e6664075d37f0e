package attendanceerrors

import (
	"net/http"

	"github.com/jagatraya2508/absensi/internal/shared/apperror"
)

var (
	ErrMissingPhoto = apperror.RequiredField("photo").
			WithMessage("Foto selfie harus diupload")
	ErrMissingCoordinates = apperror.RequiredField("coordinates").
				WithMessage("Koordinat lokasi harus diisi")
	ErrInvalidDescriptor = apperror.InvalidField("face_descriptor").
				WithMessage("Face descriptor tidak valid")

	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeDuplicateOperation,
		"Anda sudah melakukan check-in hari ini",
		http.StatusConflict,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeDuplicateOperation,
		"Anda sudah melakukan check-out hari ini",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodePrerequisiteMissing,
		"Anda belum melakukan check-in hari ini",
		http.StatusUnprocessableEntity,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Data absensi tidak ditemukan",
		http.StatusNotFound,
	)
	ErrDeleteForbidden = apperror.New(
		apperror.CodeForbidden,
		"Akses ditolak. Hanya admin yang bisa menghapus data.",
		http.StatusForbidden,
	)
	ErrInvalidUserID = apperror.InvalidField("user_id").
				WithMessage("ID user tidak valid")
	ErrInvalidDate = apperror.InvalidField("date").
			WithMessage("Format tanggal harus YYYY-MM-DD")
)
