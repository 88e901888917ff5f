package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kvgate/kvgate"
	"github.com/kvgate/kvgate/audit"
)

// BasicAuth creates middleware enforcing HTTP Basic authentication through
// the given validator. A missing header, wrong scheme, bad base64, or
// missing separator rejects the request before any backend call. A denial
// and a validation error both reject with 401; the distinction is logged.
func BasicAuth(validate CredentialValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w)
				return
			}

			if validate == nil {
				slog.Error("no credential validator configured")
				unauthorized(w)
				return
			}

			allowed, err := validate(r.Context(), username, password)
			if err != nil {
				slog.Warn("credential probe failed", "err", err)
				unauthorized(w)
				return
			}
			if !allowed {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="kvgate"`)
	WriteError(w, http.StatusUnauthorized, ErrUnauthorized.Error(), "Authentication required")
}

// statusRecorder captures the status code written by a downstream handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request with a generated request ID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// AuditRecorder creates middleware that records each request in the audit
// log. Recording failures are logged and never fail the request.
func AuditRecorder(log *audit.Log) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			entry := audit.Entry{
				Time:       start,
				Method:     r.Method,
				Path:       r.URL.Path,
				RemoteAddr: r.RemoteAddr,
				Status:     rec.status,
				Format:     kvgate.DetectFormat(r.Header.Get("Accept")).String(),
				Duration:   time.Since(start),
			}
			if err := log.Record(r.Context(), entry); err != nil {
				slog.Warn("failed to record audit entry", "err", err)
			}
		})
	}
}
