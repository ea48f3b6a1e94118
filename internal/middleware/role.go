package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campushub/backend/pkg/response"
)

// RequireRole returns a middleware that allows only the given roles. Both the
// primary role and the roles set are checked, so a multi-role user passes if
// any held role is allowed.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{})
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		roleVal, ok := c.Get(ContextUserRole)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		role, _ := roleVal.(string)
		if _, ok := allowed[role]; ok {
			c.Next()
			return
		}
		if rolesVal, ok := c.Get(ContextUserRoles); ok {
			set, _ := rolesVal.([]string)
			for _, r := range set {
				if _, ok := allowed[r]; ok {
					c.Next()
					return
				}
			}
		}
		response.Forbidden(c, "insufficient permissions")
		c.Abort()
	}
}
