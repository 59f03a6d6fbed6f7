package auth

import (
	"context"
	"net/http"
	"strings"

	dom "tailspin/internal/domain"
	"tailspin/internal/respond"

	"github.com/gin-gonic/gin"
)

const contextKeyUser = "current_user"

// UserFinder resolves a token subject to a user record.
// *service.UserService satisfies it.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (dom.User, error)
}

// CurrentUser returns the user set by RequireAuth. ok is false if the
// request did not pass through the middleware.
func CurrentUser(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// RequireAuth returns a middleware that gates a route behind a valid bearer
// token: it reads the Authorization header, verifies the token, resolves the
// subject to a user and stores the user in the request context. Any failure
// aborts with 401. The chain runs in full on every request; nothing is
// cached across requests, so a deleted account is rejected even while its
// tokens are still unexpired.
func RequireAuth(tokens *TokenService, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respond.AbortError(c, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respond.AbortError(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		userID, ok := tokens.Verify(parts[1])
		if !ok {
			respond.AbortError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			// Covers a deleted account presenting a still-valid token.
			respond.AbortError(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set(contextKeyUser, user)
		c.Next()
	}
}
