package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"

	"bibiartisan/internal/config"
	"bibiartisan/internal/metrics"
)

// Handler builds the root handler: /metrics goes to Prometheus, everything
// else to mux. The chain is security headers, CORS, request logging, metrics.
func Handler(mux goahttp.Muxer, cfg *config.Config, log *zap.Logger) http.Handler {
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			promhttp.Handler().ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	return SecurityHeaders(CORS(RequestLogging(metrics.PrometheusMiddleware(root), log), &cfg.CORS, cfg.App.Debug), cfg.App.Debug)
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders(handler http.Handler, debug bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		// HSTS only when served over TLS outside debug
		if !debug && r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		handler.ServeHTTP(w, r)
	})
}

// CORS answers preflight requests and rejects origins outside the allow list
func CORS(handler http.Handler, cfg *config.CORSConfig, debug bool) http.Handler {
	wildcard := len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if !debug && !wildcard && origin != "" && !slices.Contains(cfg.AllowedOrigins, origin) {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		// A wildcard allow list never grants credentials outside debug
		switch {
		case wildcard && !debug:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		case debug:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
		w.Header().Set("Access-Control-Expose-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by the next handler
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogging logs every request except health checks.
// Only method, path and status are logged; form bodies carry contact details.
func RequestLogging(handler http.Handler, log *zap.Logger) http.Handler {
	log = log.Named("access")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			handler.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		handler.ServeHTTP(wrapped, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.statusCode),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_addr", r.RemoteAddr),
		}
		if wrapped.statusCode >= http.StatusInternalServerError {
			log.Error("Request failed", fields...)
			return
		}
		log.Info("Request completed", fields...)
	})
}
