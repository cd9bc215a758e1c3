package rbac

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	enforceFn func(req EnforceRequest) (bool, error)
}

func (f *fakeService) Enforce(req EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func (f *fakeService) Roles() ([]RolePermissionsResponse, error) {
	return []RolePermissionsResponse{{Role: "HR", Inherits: []string{}, Permissions: []string{"leave:override"}}}, nil
}

type envelope struct {
	Ok   bool            `json:"ok"`
	Data EnforceResponse `json:"data"`
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		handler := NewHandler(&fakeService{enforceFn: func(req EnforceRequest) (bool, error) {
			assert.Equal(t, "MANAGER", req.Role)
			return req.Resource == "leave" && req.Action == "approve", nil
		}})

		router := gin.New()
		router.POST("/rbac/enforce", handler.Enforce)

		body, _ := json.Marshal(EnforceRequest{
			EmployeeID: "emp-1",
			CompanyID:  "company-1",
			Role:       " manager ",
			Resource:   "leave",
			Action:     "approve",
		})
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.True(t, env.Data.Allowed)
	})

	t.Run("negative missing fields", func(t *testing.T) {
		handler := NewHandler(&fakeService{})
		router := gin.New()
		router.POST("/rbac/enforce", handler.Enforce)

		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"role":"HR"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative service error", func(t *testing.T) {
		handler := NewHandler(&fakeService{enforceFn: func(req EnforceRequest) (bool, error) {
			return false, errors.New("boom")
		}})
		router := gin.New()
		router.POST("/rbac/enforce", handler.Enforce)

		body := `{"employee_id":"e","company_id":"c","role":"HR","resource":"leave","action":"read"}`
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
