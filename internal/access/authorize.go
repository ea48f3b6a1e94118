package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/backend/internal/models"
)

// Authorize decides whether the actor may perform the action on the target.
// Rules in priority order: admin always allowed; delete is admin-only;
// student-audience broadcasts additionally require the organizer role;
// viewing a published event is unrestricted; everything else requires the
// actor to be in the event's accessible set (organizer, accepted crew, or
// qualifying community leader). A missing target is the caller's 404; the
// kernel assumes the target exists.
func (r *Resolver) Authorize(ctx context.Context, actor Actor, action Action, target Target) (Decision, error) {
	if action == ActionViewEvent && target.Published {
		// Approved events are public; no identity needed.
		return Allow(), nil
	}
	if actor.UserID == uuid.Nil {
		return Deny(ReasonNotAuthenticated), nil
	}
	if actor.IsAdmin() {
		return Allow(), nil
	}

	switch action {
	case ActionDeleteEvent:
		// Irreversible; reserved for platform governance.
		return Deny(ReasonActionRestricted), nil

	case ActionBroadcast:
		if target.Audience == AudienceStudents && !actor.HasRole(models.RoleOrganizer) {
			// Platform-wide blasts are gated on role, independent of any
			// single event's access.
			return Deny(ReasonActionRestricted), nil
		}
		return r.requireEventAccess(ctx, actor, target)

	case ActionViewEvent:
		// Pending or rejected events are visible only to stakeholders.
		return r.requireEventAccess(ctx, actor, target)

	case ActionEditEvent, ActionManageCrew, ActionViewRegistrations:
		return r.requireEventAccess(ctx, actor, target)
	}

	return Deny(ReasonNotAuthorized), nil
}

func (r *Resolver) requireEventAccess(ctx context.Context, actor Actor, target Target) (Decision, error) {
	ok, err := r.HasEventAccess(ctx, actor.UserID, target.EventID)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return Deny(ReasonNotAuthorized), nil
	}
	return Allow(), nil
}
