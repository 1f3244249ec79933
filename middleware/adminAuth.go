package middleware

import (
	"net/http"
	"strings"

	"oasis/services/admin"
	"oasis/utils"

	"github.com/gin-gonic/gin"
)

const (
	isAdminKey = "isAdmin"
	adminKey   = "adminEmail"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), true
}

func adminFromToken(secret []byte, c *gin.Context) (string, bool) {
	tokenString, ok := bearerToken(c)
	if !ok {
		return "", false
	}
	claims, err := utils.ValidateToken(secret, tokenString)
	if err != nil {
		return "", false
	}
	if role, _ := claims["role"].(string); role != admin.AdminRole {
		return "", false
	}
	sub, _ := claims["sub"].(string)
	return sub, true
}

// JWTAuthAdminMiddleware rejects requests without a valid admin token.
func JWTAuthAdminMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := bearerToken(c); !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}
		email, ok := adminFromToken(secret, c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access")
			return
		}

		c.Set(adminKey, email)
		c.Set(isAdminKey, true)
		c.Next()
	}
}

// OptionalAdminMiddleware marks the request as admin when a valid admin token is present
// and lets every request through.
func OptionalAdminMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email, ok := adminFromToken(secret, c); ok {
			c.Set(adminKey, email)
			c.Set(isAdminKey, true)
		}
		c.Next()
	}
}

// IsAdmin reports whether an admin middleware authenticated the request.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(isAdminKey)
}
