package middleware

import (
	"starhr/internal/domain"

	"github.com/gin-gonic/gin"
)

// ActorFromContext collects the identity set by AuthMiddleware.
func ActorFromContext(c *gin.Context) domain.Actor {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		employeeID = c.GetString("user_id")
	}
	return domain.Actor{
		CompanyID:  c.GetString("company_id"),
		EmployeeID: employeeID,
		Role:       c.GetString("role"),
	}
}
