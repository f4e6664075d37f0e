package attendance

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
	attendances := r.Group("/attendance")
	attendances.Use(auth...)
	{
		create := middleware.RBACAuthorize(rbacService, "attendance", "create")
		read := middleware.RBACAuthorize(rbacService, "attendance", "read")

		attendances.POST("/check-in", create, idempotency, h.CheckIn)
		attendances.POST("/check-out", create, idempotency, h.CheckOut)
		attendances.GET("/today", read, h.Today)
		attendances.GET("/history", read, h.History)
		attendances.DELETE("/:id", middleware.RBACAuthorize(rbacService, "attendance", "delete"), h.Delete)
	}
}
