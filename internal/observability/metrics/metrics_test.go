package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGinMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	require.NoError(t, err)

	router := gin.New()
	router.Use(GinMiddleware(m))
	router.GET("/api/v1/products/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/api/v1/products/1", "/api/v1/products/2", "/nope"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/products/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unknown", "404")))
}

func TestFeatureMetricsReRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewFeatureMetrics(reg)
	require.NoError(t, err)
	second, err := NewFeatureMetrics(reg)
	require.NoError(t, err)

	first.RecordRejection("cosmo-cats")
	second.RecordRejection("cosmo-cats")

	assert.Equal(t, 2.0, testutil.ToFloat64(first.rejections.WithLabelValues("cosmo-cats")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var h *HTTPMetrics
	var f *FeatureMetrics
	h.Observe("GET", "/", 200, 0)
	f.RecordRejection("x")
}
