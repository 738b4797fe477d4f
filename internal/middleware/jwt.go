package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID  = "user_id"
	ContextIsAdmin = "is_admin"
)

// Auth validates bearer tokens. Only HS512 is accepted.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

func (a *Auth) parse(c *gin.Context) (jwt.MapClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("no bearer token")
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if token.Method.Alg() != "HS512" {
			return nil, fmt.Errorf("only HS512 is allowed")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(string); ok {
		c.Set(ContextUserID, sub)
	}
	c.Set(ContextIsAdmin, hasAdminRole(claims))
}

func hasAdminRole(claims jwt.MapClaims) bool {
	rawRoles, exists := claims["roles"]
	if !exists {
		return false
	}
	switch roles := rawRoles.(type) {
	case []interface{}:
		for _, r := range roles {
			if s, ok := r.(string); ok && s == "ADMIN" {
				return true
			}
		}
	case []string:
		for _, s := range roles {
			if s == "ADMIN" {
				return true
			}
		}
	case string:
		return roles == "ADMIN"
	}
	return false
}

// RequireAuth rejects requests without a valid token.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.parse(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the caller's identity when a valid token is present and
// lets the request through either way. Used on public pages that still want
// per-user view tracking.
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := a.parse(c); err == nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin gates admin routes on the token's roles claim. The client-side
// admin flag is display-only and never trusted here.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.parse(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if !hasAdminRole(claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access only"})
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// CallerID returns the authenticated user's id, or "" for anonymous callers.
func CallerID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CallerIsAdmin reports whether the caller's token carried the admin role.
func CallerIsAdmin(c *gin.Context) bool {
	if v, ok := c.Get(ContextIsAdmin); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
