// Package metrics exposes prometheus collectors for the HTTP surface and the
// feature toggle gate.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cosmocats"

// NewRegisterer returns the process-wide registerer served on /metrics.
func NewRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

func (m *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		// unmatched paths would explode label cardinality
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.requests.WithLabelValues(method, route, code).Inc()
	m.duration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
}

// GinMiddleware records request count and latency by route template.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.Observe(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// FeatureMetrics counts calls rejected by the toggle gate.
type FeatureMetrics struct {
	rejections *prometheus.CounterVec
}

func NewFeatureMetrics(reg prometheus.Registerer) (*FeatureMetrics, error) {
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feature_rejections_total",
		Help:      "Calls rejected because their feature toggle is disabled.",
	}, []string{"feature"})
	rejections, err := register(reg, rejections)
	if err != nil {
		return nil, err
	}
	return &FeatureMetrics{rejections: rejections}, nil
}

func (m *FeatureMetrics) RecordRejection(feature string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(feature).Inc()
}

// register tolerates re-registration so fx test apps can be built repeatedly
// against the default registry.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
