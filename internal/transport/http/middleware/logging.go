package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"hrmconsole/internal/platform/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger writes one structured line per request and feeds the request
// counters. collector may be nil.
func Logger(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			elapsed := time.Since(start)
			collector.Record(recorder.status, elapsed)
			slog.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"durationMs", elapsed.Milliseconds(),
				"requestId", GetRequestID(r.Context()),
				"session", GetSessionID(r.Context()),
			)
		})
	}
}
