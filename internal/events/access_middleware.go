package events

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushub/backend/internal/access"
	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/pkg/response"
)

// ContextEvent is the context key for the event loaded by RequireEventAction.
const ContextEvent = "event"

// RequireEventAction loads the :id event and authorizes the action through
// the access kernel. Call after JWT. A missing event is a 404 before the
// kernel is consulted; a deny is a 403 carrying the kernel's reason.
func RequireEventAction(resolver *access.Resolver, repo *Repository, action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.BadRequest(c, "invalid event id")
			c.Abort()
			return
		}
		event, err := repo.GetByID(c.Request.Context(), eventID)
		if err != nil {
			response.NotFound(c, "event not found")
			c.Abort()
			return
		}

		decision, err := resolver.Authorize(c.Request.Context(), middleware.Actor(c), action, access.Target{
			EventID:   event.ID,
			Published: event.IsPublished(),
		})
		if err != nil {
			response.Internal(c, "authorization check failed")
			c.Abort()
			return
		}
		if !decision.Allowed {
			response.Forbidden(c, string(decision.Reason))
			c.Abort()
			return
		}
		c.Set(ContextEvent, event)
		c.Next()
	}
}
