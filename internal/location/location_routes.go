package location

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
	locations := r.Group("/locations")
	locations.Use(auth...)
	{
		locations.GET("/active", middleware.RBACAuthorize(rbacService, "location", "read"), handler.GetActive)
		locations.GET("", middleware.RBACAuthorize(rbacService, "location", "manage"), handler.GetAll)
		locations.GET("/:id", middleware.RBACAuthorize(rbacService, "location", "manage"), handler.GetByID)
		locations.POST("", middleware.RBACAuthorize(rbacService, "location", "manage"), handler.Create)
		locations.PUT("/:id", middleware.RBACAuthorize(rbacService, "location", "manage"), handler.Update)
		locations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "location", "manage"), handler.Delete)
	}
}
