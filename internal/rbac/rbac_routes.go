package rbac

import (
	"starhr/internal/domain"
	"starhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(auth, middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleHR))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/roles", handler.Roles)
	}
}
