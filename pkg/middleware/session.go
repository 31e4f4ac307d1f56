package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Georgesib05/comming-soon/pkg/logger"
)

// SessionHeader identifies the anonymous shopper session owning a cart.
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

// Session reads the X-Session-ID header and stores it in the request
// context. Missing or malformed IDs are replaced by a fresh UUID, which is
// echoed back in the response header so the client can keep using it.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := r.Header.Get(SessionHeader)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.New().String()
		}
		w.Header().Set(SessionHeader, sid)

		trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("session.id", sid))

		ctx := context.WithValue(r.Context(), sessionKey{}, sid)
		ctx = logger.WithSessionID(ctx, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionIDFromContext returns the session ID set by Session, or "".
func SessionIDFromContext(ctx context.Context) string {
	if sid, ok := ctx.Value(sessionKey{}).(string); ok {
		return sid
	}
	return ""
}
