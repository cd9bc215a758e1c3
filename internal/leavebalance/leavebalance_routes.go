package leavebalance

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
	balances := r.Group("/leave-balances")
	balances.Use(auth)
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionRead), handler.GetBalances)
	}
}
