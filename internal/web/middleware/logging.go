// Package middleware provides the HTTP middleware of the inventory API:
// request logging, trusted proxy address resolution, bearer token
// authentication and per-IP rate limiting.
package middleware

import (
	"net/http"
	"time"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/logging"
)

// Logger logs one line per request once the handler returns.
//
// Log fields:
//   - method, path: the request line
//   - status: response status code
//   - duration_ms: handler time in milliseconds
//   - ip: client address after TrustedRealIP
//   - user: signed-in email, when authenticated
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		}
		if email := ww.user; email != "" {
			args = append(args, "user", email)
		}

		logger := logging.FromContext(r.Context())
		switch {
		case ww.status >= http.StatusInternalServerError:
			logger.Error("request", args...)
		case ww.status >= http.StatusBadRequest:
			logger.Warn("request", args...)
		default:
			logger.Info("request", args...)
		}
	})
}

// responseWriter captures the status code and, through setUser, the
// authenticated email so the outer logger can report it.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	user        string
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// setUser records the signed-in email on the logging writer, if w is one.
func setUser(w http.ResponseWriter, email string) {
	for {
		switch t := w.(type) {
		case *responseWriter:
			t.user = email
			return
		case interface{ Unwrap() http.ResponseWriter }:
			w = t.Unwrap()
		default:
			return
		}
	}
}
