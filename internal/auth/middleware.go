package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jiradash/internal/session"
	"jiradash/internal/token"
)

// SessionContextKey is where RequireAuth stores the resolved session record.
const SessionContextKey = "auth_session"

// RequireAuth is the single gate every protected route passes through. It
// resolves the bearer token into an active session record or rejects with
// 401; no request proceeds with a partially resolved identity.
func RequireAuth(signer *token.Signer, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "Not authenticated")
			return
		}

		claims, err := signer.Verify(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				unauthorized(c, "Token has expired")
			} else {
				unauthorized(c, "Invalid token")
			}
			return
		}

		// FindActive deactivates an expired session as a side effect, so an
		// expired-but-well-formed token both rejects and revokes.
		sess, err := store.FindActive(c.Request.Context(), claims.SessionID)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				slog.Error("session lookup failed",
					"error", err.Error(),
					"request_id", c.GetString("request_id"),
				)
			}
			unauthorized(c, "Session not found or expired")
			return
		}

		c.Set(SessionContextKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session record resolved by RequireAuth.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

// bearerToken extracts the credential from an "Authorization: Bearer x" header.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}
