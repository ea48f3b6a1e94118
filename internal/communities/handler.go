package communities

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/pkg/response"
)

// Handler handles community HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a communities handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /communities.
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateMembershipRequest is the body for PATCH /memberships/:id.
type UpdateMembershipRequest struct {
	Role   string `json:"role" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// Create handles POST /communities (admin only).
func (h *Handler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 1 || len(req.Name) > 255 {
		response.BadRequest(c, "name must be 1-255 characters")
		return
	}
	community := &models.Community{Name: req.Name, Description: req.Description, CreatedBy: userID}
	if err := h.repo.Create(c.Request.Context(), community); err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique") {
			response.Conflict(c, "a community with this name already exists")
			return
		}
		response.Internal(c, "failed to create community")
		return
	}
	response.Created(c, community)
}

// List handles GET /communities.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load communities")
		return
	}
	response.OK(c, list)
}

// Apply handles POST /communities/:id/apply. Creates a Member/Applied
// membership for the current user.
func (h *Handler) Apply(c *gin.Context) {
	communityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid community id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if _, err := h.repo.GetByID(c.Request.Context(), communityID); err != nil {
		response.NotFound(c, "community not found")
		return
	}
	membership, err := h.repo.Apply(c.Request.Context(), communityID, userID)
	if err != nil {
		response.Internal(c, "failed to apply")
		return
	}
	response.Created(c, membership)
}

// ListMembers handles GET /communities/:id/members.
func (h *Handler) ListMembers(c *gin.Context) {
	communityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid community id")
		return
	}
	members, err := h.repo.ListMembers(c.Request.Context(), communityID)
	if err != nil {
		response.Internal(c, "failed to load members")
		return
	}
	response.OK(c, members)
}

// UpdateMembership handles PATCH /memberships/:id. Admins and the community's
// approved President may review applications and change member roles.
func (h *Handler) UpdateMembership(c *gin.Context) {
	membershipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid membership id")
		return
	}
	var req UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	role := models.MembershipRole(req.Role)
	switch role {
	case models.MembershipRoleMember, models.MembershipRoleAJK, models.MembershipRoleCommittee,
		models.MembershipRoleSecretary, models.MembershipRoleTreasurer,
		models.MembershipRolePresident, models.MembershipRoleAdvisor:
	default:
		response.BadRequest(c, "invalid role")
		return
	}
	status := models.MembershipStatus(req.Status)
	switch status {
	case models.MembershipStatusApplied, models.MembershipStatusInterviewing,
		models.MembershipStatusApproved, models.MembershipStatusRejected,
		models.MembershipStatusInactive:
	default:
		response.BadRequest(c, "invalid status")
		return
	}

	membership, err := h.repo.GetMembership(c.Request.Context(), membershipID)
	if err != nil {
		response.NotFound(c, "membership not found")
		return
	}

	actor := middleware.Actor(c)
	if !actor.IsAdmin() {
		ok, err := h.repo.IsPresident(c.Request.Context(), membership.CommunityID, actor.UserID)
		if err != nil || !ok {
			response.Forbidden(c, "only admins or the community president can manage memberships")
			return
		}
	}

	if err := h.repo.UpdateMembership(c.Request.Context(), membershipID, role, status); err != nil {
		response.Internal(c, "failed to update membership")
		return
	}
	updated, err := h.repo.GetMembership(c.Request.Context(), membershipID)
	if err != nil {
		response.Internal(c, "failed to load membership")
		return
	}
	response.OK(c, updated)
}
