package leave

import (
	"net/http"

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, store: store, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("leave request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	identity := middleware.CurrentIdentity(c)
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if file, _, err := c.Request.FormFile("attachment"); err == nil {
			defer file.Close()
			ref, err := h.store.Save(c.Request.Context(), storage.Upload{
				Folder:       storage.FolderLeaves,
				Prefix:       identity.UserID,
				Body:         file,
				AllowedTypes: storage.AttachmentTypes,
			})
			if err != nil {
				h.writeServiceError(c, err)
				return
			}
			req.AttachmentRef = ref
		}
	}

	resp, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		if req.AttachmentRef != "" {
			if delErr := h.store.Delete(c.Request.Context(), req.AttachmentRef); delErr != nil {
				h.logger.Warn("leave attachment cleanup failed", zap.String("attachment_ref", req.AttachmentRef), zap.Error(delErr))
			}
		}
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetMy(c *gin.Context) {
	var filter MyLeavesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetMy(c.Request.Context(), middleware.CurrentIdentity(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Quota(c *gin.Context) {
	var filter QuotaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Quota(c.Request.Context(), middleware.CurrentIdentity(c), filter.Year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var filter ListLeavesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	rows, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, size := normalizePage(filter.Page, filter.PageSize)
	meta := response.NewPaginationMeta(total, page, size)
	response.Success(c, http.StatusOK, rows, &meta)
}

func (h *Handler) PendingCount(c *gin.Context) {
	count, err := h.service.PendingCount(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, PendingCountResponse{Count: count}, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req)
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
	response.Success(c, http.StatusOK, gin.H{"message": "Pengajuan berhasil dihapus"}, nil)
}
