package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.AddChunk()
	c.AddChunk()
	c.UpstreamError("openai")
	c.AddUploadBytes(42)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.chunksTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.upstreamErrors.WithLabelValues("openai")))
	assert.Equal(t, 42.0, testutil.ToFloat64(c.uploadBytes))
}

func TestMiddlewareAndHandler(t *testing.T) {
	c := NewCollector(nil)
	e := echo.New()
	e.Use(c.Middleware())
	e.GET("/api/health", func(ctx echo.Context) error { return ctx.String(http.StatusOK, "ok") })
	e.GET("/api/fail", func(ctx echo.Context) error { return errors.New("boom") })
	e.GET("/metrics", c.Handler())

	for _, path := range []string{"/api/health", "/api/health", "/api/fail"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues("/api/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues("/api/fail", "500")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "novel_requests_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
