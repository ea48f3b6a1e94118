package access

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/campushub/backend/internal/models"
)

// Resolver computes accessible-event sets from the relation store.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver over the given relation store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveAccessibleEvents returns the set of event ids the user may act on:
// events they organize, events where they are accepted crew, and events
// hosted by communities where they hold a qualifying approved membership.
// The three passes are independent and run concurrently. An unknown user or
// a user with no relations resolves to an empty set, not an error.
func (r *Resolver) ResolveAccessibleEvents(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var owned, crew, hosted []uuid.UUID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owned, err = r.store.EventsByOrganizer(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		crew, err = r.store.AcceptedCrewEvents(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		hosted, err = r.leadershipEvents(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]struct{}, len(owned)+len(crew)+len(hosted))
	for _, id := range owned {
		set[id] = struct{}{}
	}
	for _, id := range crew {
		set[id] = struct{}{}
	}
	for _, id := range hosted {
		set[id] = struct{}{}
	}
	return set, nil
}

// leadershipEvents is the community pass: events of every community where the
// user holds an approved leadership membership. Organizer-approved users keep
// all approved memberships regardless of role; the approval flag is a blanket
// override of the leadership-role filter.
func (r *Resolver) leadershipEvents(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	grants, err := r.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if grants == nil {
		return nil, nil
	}

	memberships, err := r.store.ApprovedMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	var communityIDs []uuid.UUID
	for _, m := range memberships {
		if grants.OrganizerApproved || models.IsLeadershipRole(m.Role) {
			communityIDs = append(communityIDs, m.CommunityID)
		}
	}
	if len(communityIDs) == 0 {
		return nil, nil
	}
	return r.store.EventsByCommunities(ctx, communityIDs)
}

// HasEventAccess reports whether the event is in the user's accessible set.
// It short-circuits relation by relation instead of materializing the full
// set, but the result is equivalent to membership in ResolveAccessibleEvents.
func (r *Resolver) HasEventAccess(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	owned, err := r.store.EventsByOrganizer(ctx, userID)
	if err != nil {
		return false, err
	}
	if containsID(owned, eventID) {
		return true, nil
	}

	crew, err := r.store.AcceptedCrewEvents(ctx, userID)
	if err != nil {
		return false, err
	}
	if containsID(crew, eventID) {
		return true, nil
	}

	hosted, err := r.leadershipEvents(ctx, userID)
	if err != nil {
		return false, err
	}
	return containsID(hosted, eventID), nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
