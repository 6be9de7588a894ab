package auth

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// AuthContextKey is the key for storing AuthContext in request context
const AuthContextKey ContextKey = "authContext"

// AuthContext identifies the signed-in user of a request. RequireAuth injects
// it after verifying the access token.
type AuthContext struct {
	UserID uuid.UUID
	Email  string
}

func WithAuthContext(ctx context.Context, authCtx *AuthContext) context.Context {
	return context.WithValue(ctx, AuthContextKey, authCtx)
}

// GetAuthContext extracts the AuthContext from a request context.
// Returns nil if no auth context is available (request had no valid token).
func GetAuthContext(ctx context.Context) *AuthContext {
	authCtx, ok := ctx.Value(AuthContextKey).(*AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}
