package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jagatraya2508/absensi/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	sentinel := apperror.InvalidField("reason").WithMessage("Alasan terlalu pendek")

	t.Run("success derived copy matches its sentinel", func(t *testing.T) {
		err := sentinel.WithDetails(map[string]int{"min": 10})

		assert.True(t, errors.Is(err, sentinel))
		assert.True(t, errors.Is(fmt.Errorf("create: %w", err), sentinel))
	})

	t.Run("negative siblings do not match", func(t *testing.T) {
		a := apperror.ErrInvalidInput.WithMessage("a")
		b := apperror.ErrInvalidInput.WithMessage("b")

		assert.False(t, errors.Is(a, b))
		assert.True(t, errors.Is(a, apperror.ErrInvalidInput))
	})

	t.Run("negative sentinel is never mutated", func(t *testing.T) {
		_ = apperror.ErrNotFound.WithMessage("other")

		assert.Equal(t, "Data tidak ditemukan", apperror.ErrNotFound.Message)
	})
}

func TestToHTTP(t *testing.T) {
	t.Run("success app error", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.ErrForbidden.WithDetails("x"))

		assert.Equal(t, http.StatusForbidden, got.Status)
		assert.Equal(t, apperror.CodeForbidden, got.Code)
		assert.Equal(t, "x", got.Details)
	})

	t.Run("negative unknown error", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("db down"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.Equal(t, "Internal server error", got.Message)
	})
}
