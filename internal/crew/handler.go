package crew

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushub/backend/internal/access"
	"github.com/campushub/backend/internal/events"
	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/pkg/response"
)

// InviteRequest is the body for POST /events/:id/crew. UserID is omitted for
// placeholder invitees who have no account yet.
type InviteRequest struct {
	UserID *string `json:"user_id"`
	Name   string  `json:"name" binding:"required"`
	Role   string  `json:"role" binding:"required"`
	Type   string  `json:"type" binding:"required"`
}

// RespondRequest is the body for PATCH /crew/:id/respond.
type RespondRequest struct {
	Status string `json:"status" binding:"required"` // accepted or rejected
}

// Handler handles crew HTTP endpoints.
type Handler struct {
	repo     *Repository
	resolver *access.Resolver
}

// NewHandler creates a crew handler.
func NewHandler(repo *Repository, resolver *access.Resolver) *Handler {
	return &Handler{repo: repo, resolver: resolver}
}

// Invite handles POST /events/:id/crew (behind RequireEventAction ManageCrew).
func (h *Handler) Invite(c *gin.Context) {
	event := c.MustGet(events.ContextEvent).(*models.Event)

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	crewType := models.CrewType(req.Type)
	if crewType != models.CrewTypeTalent && crewType != models.CrewTypeCrew {
		response.BadRequest(c, "type must be talent or crew")
		return
	}
	var userID *uuid.UUID
	if req.UserID != nil && *req.UserID != "" {
		id, err := uuid.Parse(*req.UserID)
		if err != nil {
			response.BadRequest(c, "invalid user_id")
			return
		}
		userID = &id
	}

	member := &models.EventCrew{
		EventID: event.ID,
		UserID:  userID,
		Name:    req.Name,
		Role:    req.Role,
		Type:    crewType,
		Status:  models.CrewStatusInvited,
	}
	if err := h.repo.Create(c.Request.Context(), member); err != nil {
		response.Internal(c, "failed to create crew invitation")
		return
	}
	response.Created(c, member)
}

// List handles GET /events/:id/crew (behind RequireEventAction ManageCrew).
func (h *Handler) List(c *gin.Context) {
	event := c.MustGet(events.ContextEvent).(*models.Event)
	list, err := h.repo.ListByEvent(c.Request.Context(), event.ID)
	if err != nil {
		response.Internal(c, "failed to load crew")
		return
	}
	response.OK(c, list)
}

// Respond handles PATCH /crew/:id/respond. Only the invited user may accept
// or reject their own invitation; an accept grants event access on the very
// next request.
func (h *Handler) Respond(c *gin.Context) {
	crewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid crew id")
		return
	}
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	status := models.CrewStatus(req.Status)
	if status != models.CrewStatusAccepted && status != models.CrewStatusRejected {
		response.BadRequest(c, "status must be accepted or rejected")
		return
	}

	member, err := h.repo.GetByID(c.Request.Context(), crewID)
	if err != nil {
		response.NotFound(c, "crew record not found")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if member.UserID == nil || *member.UserID != userID {
		response.Forbidden(c, "not your invitation")
		return
	}
	if member.Status != models.CrewStatusInvited && member.Status != models.CrewStatusApplied {
		response.Conflict(c, "invitation already resolved")
		return
	}

	if err := h.repo.UpdateStatus(c.Request.Context(), crewID, status); err != nil {
		response.Internal(c, "failed to update invitation")
		return
	}
	updated, err := h.repo.GetByID(c.Request.Context(), crewID)
	if err != nil {
		response.Internal(c, "failed to load crew record")
		return
	}
	response.OK(c, updated)
}

// Remove handles DELETE /crew/:id. The route is not event-scoped, so the
// ManageCrew decision is made here after loading the record.
func (h *Handler) Remove(c *gin.Context) {
	crewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid crew id")
		return
	}
	member, err := h.repo.GetByID(c.Request.Context(), crewID)
	if err != nil {
		response.NotFound(c, "crew record not found")
		return
	}

	decision, err := h.resolver.Authorize(c.Request.Context(), middleware.Actor(c), access.ActionManageCrew, access.Target{
		EventID: member.EventID,
	})
	if err != nil {
		response.Internal(c, "authorization check failed")
		return
	}
	if !decision.Allowed {
		response.Forbidden(c, string(decision.Reason))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), crewID); err != nil {
		response.Internal(c, "failed to remove crew record")
		return
	}
	response.NoContent(c)
}
