package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushub/backend/internal/access"
	"github.com/campushub/backend/internal/auth"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/pkg/response"
)

const (
	// ContextUserID is the key for user ID in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for the primary user role in gin context.
	ContextUserRole = "user_role"
	// ContextUserRoles is the key for the user roles set in gin context.
	ContextUserRoles = "user_roles"
	// ContextUserEmail is the key for user email in gin context.
	ContextUserEmail = "user_email"
)

// JWT returns a middleware that validates JWT and sets user claims in context.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserRoles, claims.Roles)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// OptionalJWT parses the Authorization header when present but never aborts,
// for public routes whose behavior widens with identity (e.g. a pending
// event's detail view for its stakeholders).
func OptionalJWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := jwtService.Validate(parts[1]); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUserRole, claims.Role)
				c.Set(ContextUserRoles, claims.Roles)
				c.Set(ContextUserEmail, claims.Email)
			}
		}
		c.Next()
	}
}

// Actor builds the access-kernel actor from the validated claims in context.
// Call only after JWT.
func Actor(c *gin.Context) access.Actor {
	actor := access.Actor{}
	if v, ok := c.Get(ContextUserID); ok {
		actor.UserID = v.(uuid.UUID)
	}
	if v, ok := c.Get(ContextUserRole); ok {
		actor.Role = models.Role(v.(string))
	}
	if v, ok := c.Get(ContextUserRoles); ok {
		actor.Roles, _ = v.([]string)
	}
	return actor
}
