package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pagecraft-io/pagecraft/internal/config"
)

func TestSetupTracing_Disabled(t *testing.T) {
	tp, err := SetupTracing(&config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, tp)

	// enabled without an endpoint is still a no-op
	tp, err = SetupTracing(&config.Config{
		Telemetry: config.TelemetryConfig{Enabled: true},
	})
	assert.NoError(t, err)
	assert.Nil(t, tp)
}

func TestGinMiddleware_OnlyTracesAPIRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware("pagecraft-test"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/projects/publications", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/health", "/api/projects/publications"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestTraceIDMiddleware_NoActiveSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Trace-Id"))
}
