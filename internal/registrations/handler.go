package registrations

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/backend/internal/access"
	"github.com/campushub/backend/internal/events"
	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/pkg/response"
)

// RegisterRequest is the body for POST /events/:id/register.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// Handler handles registration HTTP endpoints.
type Handler struct {
	repo      *Repository
	eventRepo *events.Repository
	resolver  *access.Resolver
	logger    *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(repo *Repository, eventRepo *events.Repository, resolver *access.Resolver, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, eventRepo: eventRepo, resolver: resolver, logger: logger}
}

// Register handles POST /events/:id/register (public). Only published events
// accept registrations. A logged-in caller's user id is attached when present.
func (h *Handler) Register(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	event, err := h.eventRepo.GetByID(c.Request.Context(), eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	if !event.IsPublished() {
		response.BadRequest(c, "event is not open for registration")
		return
	}

	reg := &models.Registration{
		EventID:  event.ID,
		FullName: req.FullName,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if v, ok := c.Get(middleware.ContextUserID); ok {
		id := v.(uuid.UUID)
		reg.UserID = &id
	}
	if err := h.repo.Create(c.Request.Context(), reg); err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique") {
			response.Conflict(c, "already registered for this event")
			return
		}
		response.Internal(c, "failed to register")
		return
	}
	h.logger.Info("registration created",
		zap.String("event_id", event.ID.String()), zap.String("registration_id", reg.ID.String()))
	response.Created(c, reg)
}

// ListByEvent handles GET /events/:id/registrations (behind RequireEventAction
// ViewRegistrations).
func (h *Handler) ListByEvent(c *gin.Context) {
	event := c.MustGet(events.ContextEvent).(*models.Event)
	list, err := h.repo.ListByEvent(c.Request.Context(), event.ID)
	if err != nil {
		response.Internal(c, "failed to load registrations")
		return
	}
	response.OK(c, list)
}

// MarkAttended handles PATCH /registrations/:id/attended. The route is not
// event-scoped, so the ViewRegistrations decision is made here after loading
// the registration.
func (h *Handler) MarkAttended(c *gin.Context) {
	regID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	reg, err := h.repo.GetByID(c.Request.Context(), regID)
	if err != nil {
		response.NotFound(c, "registration not found")
		return
	}

	decision, err := h.resolver.Authorize(c.Request.Context(), middleware.Actor(c), access.ActionViewRegistrations, access.Target{
		EventID: reg.EventID,
	})
	if err != nil {
		response.Internal(c, "authorization check failed")
		return
	}
	if !decision.Allowed {
		response.Forbidden(c, string(decision.Reason))
		return
	}

	if err := h.repo.UpdateStatus(c.Request.Context(), regID, models.RegistrationStatusAttended); err != nil {
		response.Internal(c, "failed to update registration")
		return
	}
	updated, err := h.repo.GetByID(c.Request.Context(), regID)
	if err != nil {
		response.Internal(c, "failed to load registration")
		return
	}
	response.OK(c, updated)
}
