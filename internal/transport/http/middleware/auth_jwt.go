package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rp-market/internal/core/auth"
	resp "rp-market/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
	KeyClaims = "claims"
)

// BearerOrCookie returns the token from the named cookie, falling back to the
// Authorization header.
func BearerOrCookie(c *gin.Context, cookie string) string {
	if v, err := c.Cookie(cookie); err == nil && v != "" {
		return v
	}
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))
	}
	return ""
}

// AuthJWT rejects requests without a valid token (401) and, when requireRole
// is set, tokens of any other role (403).
func AuthJWT(j *auth.JWTer, cookie, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := BearerOrCookie(c, cookie)
		if tok == "" {
			resp.Abort(c, http.StatusUnauthorized, "authentication required")
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Abort(c, http.StatusForbidden, "admin rights required")
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil
	}
	cl, _ := v.(*auth.Claims)
	return cl
}

// OptionalAuth attaches claims for a valid token and lets everything else through.
func OptionalAuth(j *auth.JWTer, cookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := BearerOrCookie(c, cookie); tok != "" {
			if claims, err := j.Parse(tok); err == nil {
				c.Set(KeyClaims, claims)
				c.Set(KeyUserID, claims.UID)
				c.Set(KeyRole, claims.Role)
			}
		}
		c.Next()
	}
}
