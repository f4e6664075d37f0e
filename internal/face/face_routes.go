package face

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
	face := r.Group("/face")
	face.Use(auth...)
	{
		self := middleware.RBACAuthorize(rbacService, "face", "self")
		manage := middleware.RBACAuthorize(rbacService, "face", "manage")

		face.POST("/register", self, handler.Register)
		face.POST("/verify", self, handler.Verify)
		face.GET("/status", self, handler.Status)
		face.GET("/descriptor", self, handler.Descriptor)

		face.POST("/register/:user_id", manage, handler.RegisterForUser)
		face.GET("/users", manage, handler.ListUsers)
		face.DELETE("/:user_id", manage, handler.Delete)
	}
}
