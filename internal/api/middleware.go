package api

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type contextKey string

const requestIDContextKey = contextKey("request_id")

var newRequestID, _ = nanoid.Standard(21)

// AuthMiddleware gates every API route behind the static bearer token from
// the configuration. The comparison is constant-time.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Printf("ERROR: Authorization token missing. [Request ID: %s]", GetRequestID(r.Context()))
			respondError(w, http.StatusUnauthorized, "Authorization token is required.")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || !tokenMatches(token, s.config.Auth.Token) {
			log.Printf("ERROR: Invalid authorization token. [Request ID: %s]", GetRequestID(r.Context()))
			respondError(w, http.StatusForbidden, "Invalid authorization token.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func tokenMatches(given, expected string) bool {
	if len(given) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}

// RequestIDMiddleware attaches a unique ID to each request so handler log
// lines can be correlated.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := newRequestID()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey).(string); ok {
		return id
	}
	return "-"
}

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datviz_http_requests_total",
			Help: "Number of HTTP requests by path, method and status code.",
		},
		[]string{"path", "method", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datviz_http_request_duration_seconds",
			Help:    "HTTP request latency by path and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware records a request counter and latency histogram for every
// route, exported on /metrics.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path, r.Method).Observe(time.Since(start).Seconds())
	})
}
