package venues

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/pkg/response"
)

// CreateRequest is the body for POST /venues.
type CreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// UpdateRequest is the body for PATCH /venues/:id.
type UpdateRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}

// Handler handles venue HTTP endpoints. Mutations are admin-only at the
// routing layer.
type Handler struct {
	repo *Repository
}

// NewHandler creates a venues handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /venues.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	v := &models.Venue{Name: req.Name, Location: req.Location, Capacity: req.Capacity}
	if err := h.repo.Create(c.Request.Context(), v); err != nil {
		response.Internal(c, "failed to create venue")
		return
	}
	response.Created(c, v)
}

// List handles GET /venues.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load venues")
		return
	}
	response.OK(c, list)
}

// Update handles PATCH /venues/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "venue not found")
		return
	}
	if err := h.repo.Update(c.Request.Context(), id, req.Name, req.Location, req.Capacity); err != nil {
		response.Internal(c, "failed to update venue")
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load venue")
		return
	}
	response.OK(c, v)
}

// Delete handles DELETE /venues/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete venue")
		return
	}
	response.NoContent(c)
}
