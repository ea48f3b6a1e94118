package events

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/backend/internal/access"
	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/pkg/queue"
	"github.com/campushub/backend/pkg/response"
	"github.com/campushub/backend/pkg/storage"
)

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// CreateRequest is the body for POST /events.
type CreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	StartsAt    string  `json:"starts_at" binding:"required"`
	EndsAt      *string `json:"ends_at"`
	CommunityID *string `json:"community_id"`
	VenueID     *string `json:"venue_id"`
}

// UpdateRequest is the body for PATCH /events/:id.
type UpdateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartsAt    *string `json:"starts_at"`
	EndsAt      *string `json:"ends_at"`
	VenueID     *string `json:"venue_id"`
}

// StatusRequest is the body for PATCH /events/:id/status (admin review).
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BroadcastRequest is the body for POST /events/:id/broadcast.
type BroadcastRequest struct {
	Audience string `json:"audience" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	repo     *Repository
	resolver *access.Resolver
	s3       *storage.S3
	queue    *queue.Queue
	logger   *zap.Logger
}

// NewHandler creates an events handler. s3 may be nil when poster storage is
// not configured.
func NewHandler(repo *Repository, resolver *access.Resolver, s3 *storage.S3, q *queue.Queue, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, resolver: resolver, s3: s3, queue: q, logger: logger}
}

// List handles GET /events (public; approved events only).
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListApproved(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// ListAll handles GET /events/all (admin; every status).
func (h *Handler) ListAll(c *gin.Context) {
	list, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// ListManaged handles GET /events/managed: the caller's accessible-event set,
// hydrated and sorted by start time.
func (h *Handler) ListManaged(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	set, err := h.resolver.ResolveAccessibleEvents(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to resolve accessible events")
		return
	}
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	// Stable query input; the repository orders the result by start time.
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	list, err := h.repo.ListByIDs(c.Request.Context(), ids)
	if err != nil {
		response.Internal(c, "failed to load events")
		return
	}
	response.OK(c, list)
}

// Get handles GET /events/:id. Published events are public; pending ones are
// visible only to stakeholders and admins.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	event, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	decision, err := h.resolver.Authorize(c.Request.Context(), middleware.Actor(c), access.ActionViewEvent, access.Target{
		EventID:   event.ID,
		Published: event.IsPublished(),
	})
	if err != nil {
		response.Internal(c, "authorization check failed")
		return
	}
	if !decision.Allowed {
		response.Forbidden(c, string(decision.Reason))
		return
	}
	response.OK(c, event)
}

// Create handles POST /events (organizer or admin).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	startsAt, err := parseTime(req.StartsAt)
	if err != nil {
		response.BadRequest(c, "invalid starts_at")
		return
	}
	var endsAt *time.Time
	if req.EndsAt != nil {
		t, err := parseTime(*req.EndsAt)
		if err != nil {
			response.BadRequest(c, "invalid ends_at")
			return
		}
		endsAt = &t
	}
	communityID, err := parseOptionalID(req.CommunityID)
	if err != nil {
		response.BadRequest(c, "invalid community_id")
		return
	}
	venueID, err := parseOptionalID(req.VenueID)
	if err != nil {
		response.BadRequest(c, "invalid venue_id")
		return
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		OrganizerID: userID,
		CommunityID: communityID,
		VenueID:     venueID,
	}
	if err := h.repo.Create(c.Request.Context(), event); err != nil {
		response.Internal(c, "failed to create event")
		return
	}
	response.Created(c, event)
}

// Update handles PATCH /events/:id (behind RequireEventAction EditEvent).
func (h *Handler) Update(c *gin.Context) {
	event := c.MustGet(ContextEvent).(*models.Event)

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	var startsAt, endsAt *time.Time
	if req.StartsAt != nil {
		t, err := parseTime(*req.StartsAt)
		if err != nil {
			response.BadRequest(c, "invalid starts_at")
			return
		}
		startsAt = &t
	}
	if req.EndsAt != nil {
		t, err := parseTime(*req.EndsAt)
		if err != nil {
			response.BadRequest(c, "invalid ends_at")
			return
		}
		endsAt = &t
	}
	venueID, err := parseOptionalID(req.VenueID)
	if err != nil {
		response.BadRequest(c, "invalid venue_id")
		return
	}

	if err := h.repo.Update(c.Request.Context(), event.ID, req.Title, req.Description, startsAt, endsAt, venueID); err != nil {
		response.Internal(c, "failed to update event")
		return
	}
	updated, err := h.repo.GetByID(c.Request.Context(), event.ID)
	if err != nil {
		response.Internal(c, "failed to load event")
		return
	}
	response.OK(c, updated)
}

// UpdateStatus handles PATCH /events/:id/status (admin review).
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	status := models.EventStatus(req.Status)
	switch status {
	case models.EventStatusPending, models.EventStatusApproved, models.EventStatusRejected, models.EventStatusCompleted:
	default:
		response.BadRequest(c, "invalid status")
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "event not found")
		return
	}
	if err := h.repo.UpdateStatus(c.Request.Context(), id, status); err != nil {
		response.Internal(c, "failed to update status")
		return
	}
	response.OK(c, gin.H{"id": id, "status": status})
}

// Delete handles DELETE /events/:id (behind RequireEventAction DeleteEvent,
// which only admins pass).
func (h *Handler) Delete(c *gin.Context) {
	event := c.MustGet(ContextEvent).(*models.Event)
	if err := h.repo.Delete(c.Request.Context(), event.ID); err != nil {
		response.Internal(c, "failed to delete event")
		return
	}
	response.NoContent(c)
}

// Broadcast handles POST /events/:id/broadcast. The audience is part of the
// authorization target, so the student-blast role gate applies before the
// job is enqueued.
func (h *Handler) Broadcast(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	switch req.Audience {
	case "registrants", "crew", access.AudienceStudents:
	default:
		response.BadRequest(c, "invalid audience")
		return
	}
	event, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}

	actor := middleware.Actor(c)
	decision, err := h.resolver.Authorize(c.Request.Context(), actor, access.ActionBroadcast, access.Target{
		EventID:   event.ID,
		Published: event.IsPublished(),
		Audience:  req.Audience,
	})
	if err != nil {
		response.Internal(c, "authorization check failed")
		return
	}
	if !decision.Allowed {
		response.Forbidden(c, string(decision.Reason))
		return
	}

	payload := queue.BroadcastPayload{
		EventID:  event.ID,
		SenderID: actor.UserID,
		Audience: req.Audience,
		Title:    req.Title,
		Message:  req.Message,
	}
	if err := h.queue.EnqueueBroadcast(c.Request.Context(), payload); err != nil {
		response.Internal(c, "failed to enqueue broadcast")
		return
	}
	h.logger.Info("broadcast enqueued",
		zap.String("event_id", event.ID.String()),
		zap.String("audience", req.Audience))
	response.OK(c, gin.H{"event_id": event.ID, "audience": req.Audience, "queued": true})
}

// UploadPoster handles POST /events/:id/poster (behind RequireEventAction
// EditEvent). Multipart upload to S3.
func (h *Handler) UploadPoster(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "poster storage not configured")
		return
	}
	event := c.MustGet(ContextEvent).(*models.Event)

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file")
		return
	}
	if file.Size > storage.MaxPosterFileSize {
		response.BadRequest(c, "file too large")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !storage.ValidatePosterFileType(contentType, file.Filename) {
		response.BadRequest(c, "unsupported file type")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read file")
		return
	}
	defer src.Close()

	key := storage.PosterKey(event.ID.String(), file.Filename)
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(file.Filename)
	}
	url, err := h.s3.Upload(c.Request.Context(), key, contentType, src, file.Size)
	if err != nil {
		response.Internal(c, "failed to upload poster")
		return
	}
	if err := h.repo.SetPosterKey(c.Request.Context(), event.ID, key); err != nil {
		response.Internal(c, "failed to save poster key")
		return
	}
	response.OK(c, gin.H{"key": key, "url": url})
}

// GetPosterURL handles GET /events/:id/poster-url: a pre-signed download URL.
func (h *Handler) GetPosterURL(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "poster storage not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	event, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	decision, err := h.resolver.Authorize(c.Request.Context(), middleware.Actor(c), access.ActionViewEvent, access.Target{
		EventID:   event.ID,
		Published: event.IsPublished(),
	})
	if err != nil {
		response.Internal(c, "authorization check failed")
		return
	}
	if !decision.Allowed {
		response.Forbidden(c, string(decision.Reason))
		return
	}
	if event.PosterKey == nil {
		response.NotFound(c, "event has no poster")
		return
	}
	url, err := h.s3.GeneratePresignedDownloadURL(c.Request.Context(), *event.PosterKey, h.s3.PresignExpire())
	if err != nil {
		response.Internal(c, "failed to presign poster url")
		return
	}
	response.OK(c, gin.H{"url": url})
}

func parseOptionalID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
