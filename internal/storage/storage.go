package storage

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/jagatraya2508/absensi/internal/shared/apperror"
)

// Folders for uploaded artifacts.
const (
	FolderAttendance = "attendance"
	FolderLeaves     = "leaves"
)

var (
	ErrFileTooLarge = apperror.New(
		apperror.CodeValidationFailed,
		"Ukuran file melebihi batas",
		http.StatusBadRequest,
	)
	ErrUnsupportedType = apperror.New(
		apperror.CodeValidationFailed,
		"Tipe file tidak diizinkan",
		http.StatusBadRequest,
	)
	ErrInvalidRef = errors.New("storage: invalid artifact reference")
)

// Upload describes one artifact to persist.
type Upload struct {
	Folder       string
	Prefix       string
	Body         io.Reader
	AllowedTypes []string
}

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Store interface {
	// Save persists the upload and returns an opaque reference.
	Save(ctx context.Context, upload Upload) (string, error)
	// Delete removes the referenced artifact. A missing artifact is not an error.
	Delete(ctx context.Context, ref string) error
}

var (
	ImageTypes      = []string{"image/jpeg", "image/png", "image/webp"}
	AttachmentTypes = []string{"image/jpeg", "image/png", "application/pdf"}
)
