package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-server/internal/utils"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

const (
	principalKey = "principal"
	msgForbidden = "Accès refusé"
)

type principalCtxKey struct{}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// TokenVerifier validates a session token against the current account state.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*utils.SessionClaims, error)
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext returns the caller stored in ctx, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(*Principal)
	return p, ok && p != nil
}

// IsAdmin reports whether the request context belongs to an administrator.
func IsAdmin(ctx context.Context) bool {
	p, ok := PrincipalFromContext(ctx)
	return ok && p.IsAdmin
}

// Authenticate resolves the session from the cookie or a bearer header.
// Requests without a valid token continue anonymously.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		p := &Principal{UserID: claims.UserID, Email: claims.Email, IsAdmin: claims.IsAdmin}
		c.Set(principalKey, p)
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

// RequireAdmin stops every request that is not made by an administrator.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c.Request.Context()) {
			utils.Forbidden(c, msgForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the caller set by Authenticate.
func GetPrincipal(c *gin.Context) (*Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := value.(*Principal)
	return p, ok
}
