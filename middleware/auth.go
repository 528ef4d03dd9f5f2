package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dota-journal/match-journal/backend/auth"
)

const (
	contextKeyClaims = "auth_claims"
)

// AuthMiddleware validates the session token and stores the claims in
// the request context. The token comes from the Authorization header,
// or from the token query parameter for WebSocket upgrades where
// custom headers are not available.
func AuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			token = q
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims returns the validated claims stored by AuthMiddleware
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(contextKeyClaims); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID, or 0 when
// unauthenticated
func GetUserID(c *gin.Context) uint64 {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// GetSteamID returns the authenticated user's Steam ID
func GetSteamID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.SteamID
	}
	return ""
}
