package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	applogger "OddsPull/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"route", "method", "status", "class"},
	)

	httpInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "Current number of in-flight HTTP requests",
		},
		[]string{"route", "method"},
	)

	httpResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{200, 500, 1_000, 2_000, 5_000, 10_000, 50_000, 100_000, 500_000, 1_000_000},
		},
		[]string{"route", "method", "status", "class"},
	)

	registerOnce sync.Once
)

// Metrics records per-request metrics with low-cardinality labels and logs
// 5xx responses and requests slower than slowThreshold. Route labels prefer
// a templated path (e.g. "/api/:sport/games") over the raw URL.
func Metrics(l *applogger.Logger, slowThreshold time.Duration) func(http.Handler) http.Handler {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, httpInFlight, httpResponseSize)
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeLabel(r)
			method := r.Method

			httpInFlight.WithLabelValues(route, method).Inc()
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			httpInFlight.WithLabelValues(route, method).Dec()
			observe(route, method, rec, elapsed)
			logOutliers(l, slowThreshold, route, method, rec, elapsed)
		})
	}
}

func observe(route, method string, rec *statusRecorder, elapsed time.Duration) {
	status := strconv.Itoa(rec.status)
	class := statusClass(rec.status)

	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route, method, status, class).Observe(elapsed.Seconds())
	httpResponseSize.WithLabelValues(route, method, status, class).Observe(float64(rec.written))
}

func logOutliers(l *applogger.Logger, slowThreshold time.Duration, route, method string, rec *statusRecorder, elapsed time.Duration) {
	if l == nil {
		return
	}
	fields := []applogger.Field{
		applogger.String("route", route),
		applogger.String("method", method),
		applogger.Int("status", rec.status),
		applogger.Duration("duration_ms", elapsed),
		applogger.Int("bytes", rec.written),
	}
	switch {
	case rec.status >= 500:
		l.Error("http request failed", fields...)
	case slowThreshold > 0 && elapsed >= slowThreshold:
		l.Warn("http request slow", fields...)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

func routeLabel(r *http.Request) string {
	if v := r.Context().Value("route"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return r.URL.Path
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
