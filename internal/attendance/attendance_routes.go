package attendance

import (
	"starhr/internal/domain"
	"starhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, auth gin.HandlerFunc) {
	attendances := r.Group("/attendances")
	attendances.Use(auth)
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionRead), handler.List)
	}
}
