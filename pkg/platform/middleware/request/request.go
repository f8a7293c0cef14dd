// Package request provides correlation middleware applied early in the
// chain: every request gets an ID and a pinned reference time.
package request

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"canna-gate/pkg/requestcontext"
)

// HeaderRequestID is honored when an upstream proxy already assigned an ID.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns a correlation ID to the request context and echoes it in
// the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime pins the evaluation reference time for the request. Everything
// downstream (age checks, audit timestamps) reads the same instant.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID is a convenience re-export for packages that already import
// this middleware.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
