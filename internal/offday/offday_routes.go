package offday

import (
	"github.com/jagatraya2508/absensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlersChain,
	rbacService middleware.RBACService,
) {
	offDays := r.Group("/off-days")
	offDays.Use(auth...)
	{
		self := middleware.RBACAuthorize(rbacService, "offday", "self")
		manage := middleware.RBACAuthorize(rbacService, "offday", "manage")

		offDays.GET("/my", self, handler.ListMine)
		offDays.POST("/my", self, handler.AddMine)
		offDays.DELETE("/my/:date", self, handler.DeleteMine)

		offDays.GET("", manage, handler.List)
		offDays.POST("", manage, handler.Create)
		offDays.DELETE("/:id", manage, handler.Delete)
	}
}
