package notifications

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/pkg/response"
)

// Handler serves a user's notification feed.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List returns the authenticated user's notifications.
func (h *Handler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	list, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list notifications", zap.Error(err))
		response.Internal(c, "failed to load notifications")
		return
	}
	if list == nil {
		list = []models.Notification{}
	}
	response.OK(c, list)
}

// MarkRead marks one of the user's notifications as read.
func (h *Handler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	updated, err := h.repo.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		h.logger.Error("mark notification read", zap.Error(err))
		response.Internal(c, "failed to update notification")
		return
	}
	if !updated {
		response.NotFound(c, "notification not found")
		return
	}
	response.OK(c, gin.H{"read": true})
}
