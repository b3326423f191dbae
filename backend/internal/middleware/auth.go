package middleware

import (
	"net/http"
	"strings"

	"housing-manager/backend/internal/models"
	"housing-manager/backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
)

type AuthzConfig struct {
	Secret string
}

// AuthzMiddleware resolves the Bearer token into the (userId, role) pair
// trusted by everything downstream.
func AuthzMiddleware(cfg AuthzConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := utils.ParseJWT(tokenString, cfg.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		if tokenType, ok := claims["type"].(string); ok && tokenType == "refresh" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "refresh token cannot be used for access"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user_id claim"})
			return
		}

		roleStr, _ := claims["role"].(string)
		role, err := models.ParseRole(roleStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or unknown role claim"})
			return
		}

		c.Set(ContextUserIDKey, int(userIDFloat))
		c.Set(ContextRoleKey, role)
		if username, ok := claims["username"].(string); ok {
			c.Set(ContextUsernameKey, username)
		}

		c.Next()
	}
}

// IdentityFromContext returns the identity resolved by AuthzMiddleware.
func IdentityFromContext(c *gin.Context) (models.Identity, bool) {
	userID, ok := c.Get(ContextUserIDKey)
	if !ok {
		return models.Identity{}, false
	}
	role, ok := c.Get(ContextRoleKey)
	if !ok {
		return models.Identity{}, false
	}

	id, ok := userID.(int)
	if !ok {
		return models.Identity{}, false
	}
	r, ok := role.(models.Role)
	if !ok {
		return models.Identity{}, false
	}

	return models.Identity{UserID: id, Role: r}, true
}

// RequireRole is the coarse routing-boundary gate. Finer ownership checks
// (issue author, task assignee) happen in the services.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		for _, role := range roles {
			if ident.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role for this operation"})
	}
}
