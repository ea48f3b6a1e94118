// Package access computes which events a user may act on and answers
// authorization questions for event-scoped actions. Event ownership is not a
// single field: it is the union of direct organizership, accepted crew
// membership, and community-leadership membership, so every per-event
// decision in the API routes through this package instead of ad-hoc checks
// in individual handlers.
//
// The package is stateless and performs no writes. Every decision re-reads
// the underlying relations, so a revoked membership or crew status takes
// effect on the very next request.
package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/backend/internal/models"
)

// Action is an event-scoped capability being requested.
type Action string

const (
	ActionViewEvent         Action = "view_event"
	ActionEditEvent         Action = "edit_event"
	ActionDeleteEvent       Action = "delete_event"
	ActionManageCrew        Action = "manage_crew"
	ActionViewRegistrations Action = "view_registrations"
	ActionBroadcast         Action = "broadcast"
)

// AudienceStudents is the broadcast audience that blasts every student on the
// platform rather than one event's stakeholders; it carries an extra role
// gate (see Authorize).
const AudienceStudents = "students"

// Reason classifies why a request was denied.
type Reason string

const (
	ReasonNotAuthenticated Reason = "not_authenticated"
	ReasonNotAuthorized    Reason = "not_authorized"
	ReasonActionRestricted Reason = "action_restricted"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with the given reason.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Actor identifies the requesting user and their role claims.
type Actor struct {
	UserID uuid.UUID
	Role   models.Role
	Roles  []string
}

// HasRole reports whether the actor holds the role, in either the primary
// role or the roles set.
func (a Actor) HasRole(role models.Role) bool {
	if a.Role == role {
		return true
	}
	for _, r := range a.Roles {
		if models.Role(r) == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.HasRole(models.RoleAdmin)
}

// Target identifies the event an action applies to. Published reflects the
// event's approved status; Audience is set only for broadcasts. The caller
// resolves the event before invoking the kernel, so a missing event is a 404
// upstream, never a concern here.
type Target struct {
	EventID   uuid.UUID
	Published bool
	Audience  string
}

// Membership is one approved community membership as seen by the resolver.
type Membership struct {
	CommunityID uuid.UUID
	Role        models.MembershipRole
}

// Grants is the normalized per-user view the resolver reads: the reconciled
// role fields plus the organizer approval flag.
type Grants struct {
	Role              models.Role
	Roles             []string
	OrganizerApproved bool
}

// Store provides the read-only relation queries the resolver needs. All
// methods return empty results, not errors, when the user has no matching
// records; query-layer failures propagate unmodified.
type Store interface {
	// EventsByOrganizer returns ids of events the user organizes.
	EventsByOrganizer(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// AcceptedCrewEvents returns ids of events where the user is accepted
	// crew or talent.
	AcceptedCrewEvents(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// ApprovedMemberships returns the user's approved community memberships.
	ApprovedMemberships(ctx context.Context, userID uuid.UUID) ([]Membership, error)
	// EventsByCommunities returns ids of events hosted by any of the
	// communities.
	EventsByCommunities(ctx context.Context, communityIDs []uuid.UUID) ([]uuid.UUID, error)
	// GetUser returns the user's grants, or nil when the user does not exist.
	GetUser(ctx context.Context, userID uuid.UUID) (*Grants, error)
}
