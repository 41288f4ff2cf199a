// Package ctxutil carries request-scoped identifiers through context.Context.
// Values survive context.WithoutCancel, so a population pass started by one
// request logs with that request's id.
package ctxutil

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	originKey    ctxKey = "origin"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithOrigin tags the context with the entry point that started the work,
// e.g. "http" or "warmup".
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey, origin)
}

// OriginFromCtx returns the origin tag, or an empty string if absent.
func OriginFromCtx(ctx context.Context) string {
	o, _ := ctx.Value(originKey).(string)
	return o
}
