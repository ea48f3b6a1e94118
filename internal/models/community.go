package models

import (
	"time"

	"github.com/google/uuid"
)

// Community represents a student community that can host events.
type Community struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MembershipRole is a user's role within a community.
type MembershipRole string

const (
	MembershipRoleMember    MembershipRole = "Member"
	MembershipRoleAJK       MembershipRole = "AJK"
	MembershipRoleCommittee MembershipRole = "Committee"
	MembershipRoleSecretary MembershipRole = "Secretary"
	MembershipRoleTreasurer MembershipRole = "Treasurer"
	MembershipRolePresident MembershipRole = "President"
	MembershipRoleAdvisor   MembershipRole = "Advisor"
)

// MembershipStatus is the application state of a community membership.
type MembershipStatus string

const (
	MembershipStatusApplied      MembershipStatus = "Applied"
	MembershipStatusInterviewing MembershipStatus = "Interviewing"
	MembershipStatusApproved     MembershipStatus = "Approved"
	MembershipStatusRejected     MembershipStatus = "Rejected"
	MembershipStatusInactive     MembershipStatus = "Inactive"
)

// leadershipRoles are the community roles that carry event-management access.
// Advisor and plain Member deliberately excluded.
var leadershipRoles = map[MembershipRole]struct{}{
	MembershipRolePresident: {},
	MembershipRoleSecretary: {},
	MembershipRoleTreasurer: {},
	MembershipRoleCommittee: {},
	MembershipRoleAJK:       {},
}

// IsLeadershipRole reports whether the community role confers event access.
func IsLeadershipRole(role MembershipRole) bool {
	_, ok := leadershipRoles[role]
	return ok
}

// CommunityMembership links a user to a community. At most one record exists
// per (community, user) pair; only Approved status confers any access.
type CommunityMembership struct {
	ID          uuid.UUID        `json:"id"`
	CommunityID uuid.UUID        `json:"community_id"`
	UserID      uuid.UUID        `json:"user_id"`
	Role        MembershipRole   `json:"role"`
	Status      MembershipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
