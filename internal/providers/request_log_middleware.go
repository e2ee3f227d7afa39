package providers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogMiddleware writes one access log line per request and echoes a
// request id, generating one when the caller did not send it.
func RequestLogMiddleware(logger Logger, behindProxy bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		logger.Infof(GetLogTypeByRequestType(r.Method), "%s %s %s status=%d duration=%s request_id=%s",
			r.Method, r.URL.RequestURI(), ClientAddr(r, behindProxy), sw.status, time.Since(start), id)
	})
}
