package face

import (
	"net/http"

	"github.com/jagatraya2508/absensi/internal/middleware"
	"github.com/jagatraya2508/absensi/internal/shared/apperror"
	"github.com/jagatraya2508/absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("face.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("face.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("face request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bindFail(c *gin.Context, err error) {
	h.fail(c, apperror.MapValidationError(err))
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterFaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFail(c, err)
		return
	}

	resp, err := h.service.RegisterSelf(c.Request.Context(), middleware.CurrentIdentity(c), req.Descriptor)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) RegisterForUser(c *gin.Context) {
	var req RegisterFaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFail(c, err)
		return
	}

	resp, err := h.service.RegisterForUser(c.Request.Context(), c.Param("user_id"), req.Descriptor)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyFaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFail(c, err)
		return
	}

	result, err := h.service.Verify(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Descriptor(c *gin.Context) {
	resp, err := h.service.MyDescriptor(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListUsers(c *gin.Context) {
	resp, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("user_id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
