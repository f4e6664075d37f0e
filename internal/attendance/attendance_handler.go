package attendance

import (
	"encoding/json"
	"net/http"
	"strings"

	attendanceerrors "github.com/jagatraya2508/absensi/internal/attendance/errors"
	"github.com/jagatraya2508/absensi/internal/domain"
	"github.com/jagatraya2508/absensi/internal/face"
	"github.com/jagatraya2508/absensi/internal/middleware"
	"github.com/jagatraya2508/absensi/internal/shared/apperror"
	"github.com/jagatraya2508/absensi/internal/shared/response"
	"github.com/jagatraya2508/absensi/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	store   storage.Store
	logger  *zap.Logger
}

func NewHandler(service Service, store storage.Store, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, store: store, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("attendance request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

type submitFunc func(c *gin.Context, identity domain.Identity, req SubmitRequest) (SubmitResponse, error)

func (h *Handler) CheckIn(c *gin.Context) {
	h.submit(c, func(c *gin.Context, identity domain.Identity, req SubmitRequest) (SubmitResponse, error) {
		return h.service.CheckIn(c.Request.Context(), identity, req)
	})
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.submit(c, func(c *gin.Context, identity domain.Identity, req SubmitRequest) (SubmitResponse, error) {
		return h.service.CheckOut(c.Request.Context(), identity, req)
	})
}

// submit stores the selfie first and removes it again when the gate rejects
// the submission.
func (h *Handler) submit(c *gin.Context, fn submitFunc) {
	var form SubmitForm
	if err := c.ShouldBind(&form); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	descriptor, err := parseDescriptor(form.FaceDescriptor)
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidDescriptor)
		return
	}

	identity := middleware.CurrentIdentity(c)
	photoRef := ""
	if file, _, err := c.Request.FormFile("photo"); err == nil {
		defer file.Close()
		photoRef, err = h.store.Save(c.Request.Context(), storage.Upload{
			Folder:       storage.FolderAttendance,
			Prefix:       identity.UserID,
			Body:         file,
			AllowedTypes: storage.ImageTypes,
		})
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
	}

	resp, err := fn(c, identity, SubmitRequest{
		PhotoRef:       photoRef,
		Latitude:       form.Latitude,
		Longitude:      form.Longitude,
		LocationID:     form.LocationID,
		Notes:          form.Notes,
		FaceDescriptor: descriptor,
	})
	if err != nil {
		if photoRef != "" {
			if delErr := h.store.Delete(c.Request.Context(), photoRef); delErr != nil {
				h.logger.Warn("attendance photo cleanup failed", zap.String("photo_ref", photoRef), zap.Error(delErr))
			}
		}
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

// parseDescriptor reads the optional JSON array sent in the multipart form.
func parseDescriptor(raw string) (face.Descriptor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var d face.Descriptor
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, err
	}
	return d, nil
}

func (h *Handler) Today(c *gin.Context) {
	resp, err := h.service.Today(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	var filter HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.History(c.Request.Context(), middleware.CurrentIdentity(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Data absensi berhasil dihapus"}, nil)
}
