package report

import (
	"github.com/jagatraya2508/absensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlersChain, rbacService middleware.RBACService) {
	reports := r.Group("/reports")
	reports.Use(auth...)
	reports.Use(middleware.RBACAuthorize(rbacService, "report", "read"))
	{
		reports.GET("/daily", h.Daily)
		reports.GET("/monthly", h.Monthly)
	}
}
