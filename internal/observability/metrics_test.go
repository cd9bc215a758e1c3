package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/leaves/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", m.Handler())

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/leaves/abc", nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("/leaves/:id", "GET", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "starhr_http_requests_total")
}

func TestMetrics_TransitionsAndJobs(t *testing.T) {
	m := NewMetrics()

	m.RecordTransition("leave", "APPROVED")
	m.RecordTransition("leave", "APPROVED")
	m.RecordTransition("replacement", "EXPIRED")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.transitions.WithLabelValues("leave", "APPROVED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transitions.WithLabelValues("replacement", "EXPIRED")))

	boom := errors.New("boom")
	assert.ErrorIs(t, m.Track("credit_expiry")(boom), boom)
	assert.NoError(t, m.Track("credit_expiry")(nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.jobRuns.WithLabelValues("credit_expiry", "failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.jobRuns.WithLabelValues("credit_expiry", "success")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	m.RecordTransition("leave", "APPROVED")
	assert.NoError(t, m.Track("x")(nil))
	assert.NotNil(t, m.Registerer())
}
