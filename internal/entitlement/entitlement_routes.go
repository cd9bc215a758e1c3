package entitlement

import (
	"starhr/internal/domain"
	"starhr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	auth gin.HandlerFunc,
) {
	leaveTypes := r.Group("/leave-types")
	leaveTypes.Use(auth)
	{
		leaveTypes.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveType, domain.ActionRead), handler.GetLeaveTypes)
	}

	entitlements := r.Group("/entitlements")
	entitlements.Use(auth)
	{
		entitlements.GET("/preview", middleware.RBACAuthorize(rbacService, domain.ResourceEntitlement, domain.ActionRead), handler.Preview)
	}
}
