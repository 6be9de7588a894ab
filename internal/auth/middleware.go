package auth

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/escrowline/backend/internal/api"
	"github.com/escrowline/backend/internal/apperr"
)

const bearerPrefix = "Bearer "

// RequireAuth returns a middleware that requires a valid access token in the
// Authorization header. Requests without one are answered with 401.
// On success the AuthContext is injected into the request context.
func RequireAuth(authService *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			slog.WarnContext(c.Request.Context(), "authentication required but not provided",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			api.Fail(c, apperr.Unauthorized("authentication required"))
			return
		}

		claims, err := authService.Authenticate(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rejected access token", "path", c.Request.URL.Path, "error", err)
			api.Fail(c, err)
			return
		}

		userID, _ := claims.UserID()
		ctx := WithAuthContext(c.Request.Context(), &AuthContext{UserID: userID, Email: claims.Email})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
