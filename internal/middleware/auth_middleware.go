package middleware

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"starhr/internal/shared/apperror"
	"starhr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token issued by the identity layer and
// exposes user_id, employee_id, company_id and role on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, ErrTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = ErrTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, ErrInvalidToken)
			return
		}

		values := make(map[string]string, 4)
		for _, key := range []string{"user_id", "company_id", "employee_id", "role"} {
			v, _ := claims[key].(string)
			if v == "" {
				abortWith(c, ErrMissingClaim.WithDetails(map[string]any{"claim": key}))
				return
			}
			values[key] = v
		}

		c.Set("user_id", values["user_id"])
		c.Set("employee_id", values["employee_id"])
		c.Set("company_id", values["company_id"])
		c.Set("role", strings.ToUpper(values["role"]))

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" || !slices.Contains(allowedRoles, role) {
			abortWith(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}
