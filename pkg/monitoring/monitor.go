package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// AnalysisRequestDuration 情感分析外部调用耗时
	AnalysisRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_request_duration_seconds",
			Help:    "Duration of external sentiment analysis calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"model"},
	)

	// AnalysisFallbackCounter 关键词降级分析次数
	AnalysisFallbackCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_fallback_total",
			Help: "Total number of keyword fallback analyses",
		},
		[]string{"kind"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AnalysisRequestDuration)
	prometheus.MustRegister(AnalysisFallbackCounter)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
