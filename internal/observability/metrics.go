package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service registry and the collectors shared by the HTTP
// layer, the workflow services and the background jobs.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	jobRuns         *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "starhr_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "starhr_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "starhr_workflow_transitions_total",
		Help: "Leave and replacement credit state transitions by flow and action.",
	}, []string{"flow", "action"})
	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "starhr_jobs_total",
		Help: "Background job executions by job and status.",
	}, []string{"job", "status"})
	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "starhr_job_duration_seconds",
		Help:    "Background job duration by job.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	registry.MustRegister(requests, duration, transitions, jobRuns, jobDuration)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		transitions:     transitions,
		jobRuns:         jobRuns,
		jobDuration:     jobDuration,
	}
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) {
			c.AbortWithStatus(http.StatusServiceUnavailable)
		}
	}
	return gin.WrapH(m.handler)
}

// Middleware records one sample per request, labelled by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// RecordTransition counts a committed workflow transition.
func (m *Metrics) RecordTransition(flow, action string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(flow, action).Inc()
}

// Track times a job run; call the returned func with the run's error.
func (m *Metrics) Track(job string) func(error) error {
	start := time.Now()
	return func(err error) error {
		if m == nil {
			return err
		}
		status := "success"
		if err != nil {
			status = "failure"
		}
		m.jobRuns.WithLabelValues(job, status).Inc()
		m.jobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}
