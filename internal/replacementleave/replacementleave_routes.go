package replacementleave

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
	credits := r.Group("/replacement-credits")
	credits.Use(auth)
	{
		credits.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceReplacement, domain.ActionCreate), middleware.RateLimitByUser(2, 10), idempotency, handler.Credit)
		credits.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceReplacement, domain.ActionRead), handler.List)
		credits.POST("/:id/approve", middleware.RBACAuthorize(rbacService, domain.ResourceReplacement, domain.ActionApprove), handler.Approve)
		credits.POST("/:id/reject", middleware.RBACAuthorize(rbacService, domain.ResourceReplacement, domain.ActionApprove), handler.Reject)
	}
}
