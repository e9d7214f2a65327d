package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"domainguard/src/core/domain"
	"domainguard/src/core/ports"
)

// AuthKey is the context key holding the request's *domain.AuthObject.
const AuthKey = "auth"

// SessionAuth resolves the request's AuthObject from the session cookie or an
// "Authorization: Bearer" token. Requests without a token, or with an unknown
// or expired one, continue as signed out; deciding what signed-out requests
// may do is Protect's job. Storage failures abort with a 500.
func SessionAuth(repo ports.SessionRepository, cookieName string, log *slog.Logger, pages ErrorPages) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			c.Set(AuthKey, domain.SignedOut())
			c.Next()
			return
		}

		auth, err := repo.GetAuthBySessionToken(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(AuthKey, auth)
		case domain.IsNotFound(err):
			log.Debug("session token not recognised", "request_id", GetRequestID(c))
			c.Set(AuthKey, domain.SignedOut())
		default:
			log.Error("failed to resolve session",
				"request_id", GetRequestID(c),
				"error", err,
			)
			renderInternalError(c, pages)
			c.Abort()
			return
		}

		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookieName == "" {
		return ""
	}
	if v, err := c.Cookie(cookieName); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

// GetAuth returns the request's AuthObject, or a signed-out one when
// SessionAuth has not run.
func GetAuth(c *gin.Context) *domain.AuthObject {
	if v, exists := c.Get(AuthKey); exists {
		if auth, ok := v.(*domain.AuthObject); ok && auth != nil {
			return auth
		}
	}
	return domain.SignedOut()
}
