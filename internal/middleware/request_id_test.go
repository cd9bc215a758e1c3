package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"starhr/internal/middleware"
	"starhr/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	send := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if header != "" {
			req.Header.Set(middleware.RequestIDHeader, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("success keeps caller id", func(t *testing.T) {
		w := send("req-2026.03_01")

		assert.Equal(t, "req-2026.03_01", w.Body.String())
		assert.Equal(t, "req-2026.03_01", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("success generates id when missing", func(t *testing.T) {
		w := send("")

		_, err := uuid.Parse(w.Body.String())
		require.NoError(t, err)
		assert.Equal(t, w.Body.String(), w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("replaces id longer than 64 characters", func(t *testing.T) {
		long := strings.Repeat("a", 65)

		w := send(long)

		assert.NotEqual(t, long, w.Body.String())
		_, err := uuid.Parse(w.Body.String())
		assert.NoError(t, err)
	})

	t.Run("replaces id with unsafe characters", func(t *testing.T) {
		w := send("abc\" injected=1")

		assert.NotContains(t, w.Body.String(), "injected")
		_, err := uuid.Parse(w.Body.String())
		assert.NoError(t, err)
	})
}
