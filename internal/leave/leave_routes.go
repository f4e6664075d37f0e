package leave

import (
	"github.com/jagatraya2508/absensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	auth gin.HandlersChain,
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
) {
	leaves := r.Group("/leaves")
	leaves.Use(auth...)
	{
		read := middleware.RBACAuthorize(rbacService, "leave", "read")
		readAll := middleware.RBACAuthorize(rbacService, "leave", "read_all")

		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), idempotency, h.Create)
		leaves.GET("/my", read, h.GetMy)
		leaves.GET("/quota", read, h.Quota)
		leaves.GET("", readAll, h.List)
		leaves.GET("/pending-count", readAll, h.PendingCount)
		leaves.GET("/:id", read, h.GetByID)
		leaves.PUT("/:id/status", middleware.RBACAuthorize(rbacService, "leave", "approve"), h.UpdateStatus)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), h.Delete)
	}
}
