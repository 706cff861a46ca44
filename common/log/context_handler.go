package log

import (
	"context"
	"log/slog"
)

type requestIDContextKey struct{}

// SetRequestIDInContext stores a request id so every log record emitted
// with the returned context carries it.
func SetRequestIDInContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

func GetRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDContextKey{}).(string); ok {
		return requestID
	}
	return ""
}

// ContextHandler is a slog.Handler that adds the request id to every log record.
type ContextHandler struct {
	slog.Handler
}

// Handle adds the request id to the log record before passing it to the underlying handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID := GetRequestIDFromContext(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	return h.Handler.Handle(ctx, r)
}
