package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHeader carries the opaque cart session token in both directions.
const SessionHeader = "X-Cart-Session"

type contextKey string

const (
	sessionIDKey     contextKey = "session_id"
	sessionMintedKey contextKey = "session_minted"
)

// SessionMiddleware resolves the cart session for the request. Requests
// without a well-formed token get a fresh one, echoed in the response.
func SessionMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionHeader)
			ctx := r.Context()
			if _, err := uuid.Parse(sessionID); err != nil {
				if sessionID != "" {
					logger.Debug("Replacing malformed session token", zap.String("token", sessionID))
				}
				sessionID = uuid.NewString()
				ctx = context.WithValue(ctx, sessionMintedKey, true)
			}

			w.Header().Set(SessionHeader, sessionID)
			next.ServeHTTP(w, r.WithContext(WithSessionID(ctx, sessionID)))
		})
	}
}

// WithSessionID stores a session id in ctx.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionID extracts the session id from the request context
func GetSessionID(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	return sessionID, ok
}

// ClientSessionID returns the session id only when the client presented it.
// Tokens minted for this request are not returned.
func ClientSessionID(ctx context.Context) (string, bool) {
	if minted, _ := ctx.Value(sessionMintedKey).(bool); minted {
		return "", false
	}
	return GetSessionID(ctx)
}
