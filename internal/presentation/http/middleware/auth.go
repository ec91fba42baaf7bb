package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/identity"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/response"
	"github.com/sangkips/stockboard-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. The caller's
// identity is placed on the request context for services and repositories.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		role := enum.Role(claims.Role)
		if !role.IsValid() {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		id := identity.Identity{UserID: claims.UserID, Email: claims.Email, Role: role}
		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), id))

		// Set user info in gin context for middleware further down
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", role)

		c.Next()
	}
}

// RequireRole creates a middleware that lets only the given roles through
func RequireRole(roles ...enum.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.FromContext(c.Request.Context())
		if !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if !id.HasRole(roles...) {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}

// userIDFrom returns the authenticated user ID, or uuid.Nil
func userIDFrom(c *gin.Context) uuid.UUID {
	if id, ok := identity.FromContext(c.Request.Context()); ok {
		return id.UserID
	}
	return uuid.Nil
}
