package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/pkg/ctxutil"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 128

// RequestID returns middleware that stores a request id in the context and
// echoes it in the response. An incoming id is reused unless it is empty or
// longer than 128 bytes. The context is also tagged with origin "http".
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithOrigin(ctxutil.WithRequestID(r.Context(), id), "http")
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
