package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"starhr/internal/domain"
	"starhr/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

type fakeRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func authenticated(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("employee_id", "emp-1")
		c.Set("company_id", "company-1")
		c.Set("role", role)
		c.Next()
	}
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(svc *fakeRBAC, pre gin.HandlerFunc) int {
		r := gin.New()
		r.POST("/leaves/:id/approve", pre, middleware.RBACAuthorize(svc, domain.ResourceLeave, domain.ActionApprove), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/1/approve", nil))
		return w.Code
	}

	t.Run("success", func(t *testing.T) {
		svc := &fakeRBAC{allowed: true}
		assert.Equal(t, http.StatusOK, run(svc, authenticated(domain.RoleManager)))
		assert.Equal(t, domain.RoleManager, svc.got.Role)
		assert.Equal(t, "company-1", svc.got.CompanyID)
		assert.Equal(t, domain.ActionApprove, svc.got.Action)
	})

	t.Run("negative forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, run(&fakeRBAC{}, authenticated(domain.RoleEmployee)))
	})

	t.Run("negative missing auth context", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, run(&fakeRBAC{allowed: true}, func(c *gin.Context) { c.Next() }))
	})

	t.Run("negative enforcer error", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, run(&fakeRBAC{err: errors.New("boom")}, authenticated(domain.RoleHR)))
	})
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ping", authenticated(domain.RoleEmployee), middleware.RateLimitByUser(rate.Limit(1), 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
