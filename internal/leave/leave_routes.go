package leave

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
	idempotency gin.HandlerFunc,
) {
	leaves := r.Group("/leaves")
	leaves.Use(auth)
	{
		leaves.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCreate), middleware.RateLimitByUser(1, 5), idempotency, handler.Submit)
		leaves.GET("/mine", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.ListMine)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionApprove), handler.ListPending)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.GetByID)
		leaves.GET("/:id/history", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.History)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionApprove), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionApprove), handler.Reject)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCancel), handler.Cancel)
		leaves.POST("/:id/override", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionOverride), middleware.RateLimitByUser(0.5, 2), handler.Override)
	}
}
