package logging

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// quietPaths are polled by monitors every few seconds; logging them would
// drown real traffic in the weekly files.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// loggedWriter captures the status and body size a handler produced.
type loggedWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (lw *loggedWriter) WriteHeader(code int) {
	lw.status = code
	lw.ResponseWriter.WriteHeader(code)
}

func (lw *loggedWriter) Write(p []byte) (int, error) {
	n, err := lw.ResponseWriter.Write(p)
	lw.bytes += n
	return n, err
}

// writerPool recycles wrappers so request logging stays allocation-free on
// the hot path.
var writerPool = sync.Pool{
	New: func() any {
		return &loggedWriter{status: http.StatusOK}
	},
}

// LoggingMiddleware emits one structured entry per finished request, keyed by
// the chi request id.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			lw := writerPool.Get().(*loggedWriter)
			lw.ResponseWriter = w
			lw.status = http.StatusOK
			lw.bytes = 0

			next.ServeHTTP(lw, r)

			requestID, ok := r.Context().Value(middleware.RequestIDKey).(string)
			if !ok || requestID == "" {
				requestID = "unknown"
			}

			attrs := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
			}
			if r.URL.RawQuery != "" {
				attrs = append(attrs, "query", r.URL.RawQuery)
			}
			attrs = append(attrs,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"status_code", lw.status,
				"bytes_written", lw.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			logger.InfoContext(r.Context(), "HTTP request", attrs...)

			writerPool.Put(lw)
		})
	}
}
