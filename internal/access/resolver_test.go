package access

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/campushub/backend/internal/models"
)

// fakeStore is an in-memory Store over plain relation records, so tests can
// mutate statuses between calls the way the real CRUD system does.
type fakeStore struct {
	events      map[uuid.UUID]fakeEvent
	crew        []fakeCrew
	memberships []fakeMembership
	users       map[uuid.UUID]Grants
	err         error
}

type fakeEvent struct {
	organizerID uuid.UUID
	communityID *uuid.UUID
}

type fakeCrew struct {
	eventID uuid.UUID
	userID  *uuid.UUID
	status  models.CrewStatus
}

type fakeMembership struct {
	communityID uuid.UUID
	userID      uuid.UUID
	role        models.MembershipRole
	status      models.MembershipStatus
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events: make(map[uuid.UUID]fakeEvent),
		users:  make(map[uuid.UUID]Grants),
	}
}

func (s *fakeStore) EventsByOrganizer(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if s.err != nil {
		return nil, s.err
	}
	var ids []uuid.UUID
	for id, e := range s.events {
		if e.organizerID == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *fakeStore) AcceptedCrewEvents(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if s.err != nil {
		return nil, s.err
	}
	var ids []uuid.UUID
	for _, c := range s.crew {
		if c.userID != nil && *c.userID == userID && c.status == models.CrewStatusAccepted {
			ids = append(ids, c.eventID)
		}
	}
	return ids, nil
}

func (s *fakeStore) ApprovedMemberships(_ context.Context, userID uuid.UUID) ([]Membership, error) {
	if s.err != nil {
		return nil, s.err
	}
	var list []Membership
	for _, m := range s.memberships {
		if m.userID == userID && m.status == models.MembershipStatusApproved {
			list = append(list, Membership{CommunityID: m.communityID, Role: m.role})
		}
	}
	return list, nil
}

func (s *fakeStore) EventsByCommunities(_ context.Context, communityIDs []uuid.UUID) ([]uuid.UUID, error) {
	if s.err != nil {
		return nil, s.err
	}
	want := make(map[uuid.UUID]struct{}, len(communityIDs))
	for _, id := range communityIDs {
		want[id] = struct{}{}
	}
	var ids []uuid.UUID
	for id, e := range s.events {
		if e.communityID == nil {
			continue
		}
		if _, ok := want[*e.communityID]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *fakeStore) GetUser(_ context.Context, userID uuid.UUID) (*Grants, error) {
	if s.err != nil {
		return nil, s.err
	}
	g, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (s *fakeStore) addUser(role models.Role, approved bool) uuid.UUID {
	id := uuid.New()
	s.users[id] = Grants{Role: role, Roles: []string{string(role)}, OrganizerApproved: approved}
	return id
}

func (s *fakeStore) addEvent(organizerID uuid.UUID, communityID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.events[id] = fakeEvent{organizerID: organizerID, communityID: communityID}
	return id
}

func wantSet(t *testing.T, got map[uuid.UUID]struct{}, want ...uuid.UUID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d accessible events, got %d", len(want), len(got))
	}
	for _, id := range want {
		if _, ok := got[id]; !ok {
			t.Errorf("expected event %s in accessible set", id)
		}
	}
}

func TestResolveNoRelationsIsEmpty(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(models.RoleStudent, false)
	// Someone else's event keeps the store non-trivial.
	store.addEvent(store.addUser(models.RoleOrganizer, false), nil)

	set, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantSet(t, set)
}

func TestResolveUnknownUserIsEmpty(t *testing.T) {
	store := newFakeStore()
	set, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantSet(t, set)
}

func TestResolveOwnershipPass(t *testing.T) {
	store := newFakeStore()
	organizer := store.addUser(models.RoleOrganizer, false)
	e1 := store.addEvent(organizer, nil)
	e2 := store.addEvent(organizer, nil)
	store.addEvent(store.addUser(models.RoleOrganizer, false), nil)

	set, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), organizer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantSet(t, set, e1, e2)
}

func TestResolveCrewPassByStatus(t *testing.T) {
	statuses := []struct {
		status models.CrewStatus
		want   bool
	}{
		{models.CrewStatusAccepted, true},
		{models.CrewStatusInvited, false},
		{models.CrewStatusRejected, false},
		{models.CrewStatusApplied, false},
	}
	for _, tc := range statuses {
		store := newFakeStore()
		user := store.addUser(models.RoleStudent, false)
		event := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
		store.crew = append(store.crew, fakeCrew{eventID: event, userID: &user, status: tc.status})

		set, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), user)
		if err != nil {
			t.Fatalf("resolve (%s): %v", tc.status, err)
		}
		if _, ok := set[event]; ok != tc.want {
			t.Errorf("crew status %s: accessible = %v, want %v", tc.status, ok, tc.want)
		}
	}
}

func TestResolveCrewPlaceholderNeverConfersAccess(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(models.RoleStudent, false)
	event := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
	// Placeholder invitee with no account: accepted but nil user id.
	store.crew = append(store.crew, fakeCrew{eventID: event, userID: nil, status: models.CrewStatusAccepted})

	set, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantSet(t, set)
}

func TestResolveLeadershipRoleFilter(t *testing.T) {
	roles := []struct {
		role models.MembershipRole
		want bool
	}{
		{models.MembershipRolePresident, true},
		{models.MembershipRoleSecretary, true},
		{models.MembershipRoleTreasurer, true},
		{models.MembershipRoleCommittee, true},
		{models.MembershipRoleAJK, true},
		{models.MembershipRoleMember, false},
		{models.MembershipRoleAdvisor, false},
	}
	for _, tc := range roles {
		store := newFakeStore()
		user := store.addUser(models.RoleStudent, false)
		community := uuid.New()
		event := store.addEvent(store.addUser(models.RoleOrganizer, false), &community)
		store.memberships = append(store.memberships, fakeMembership{
			communityID: community, userID: user, role: tc.role, status: models.MembershipStatusApproved,
		})

		set, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), user)
		if err != nil {
			t.Fatalf("resolve (%s): %v", tc.role, err)
		}
		if _, ok := set[event]; ok != tc.want {
			t.Errorf("membership role %s: accessible = %v, want %v", tc.role, ok, tc.want)
		}
	}
}

func TestResolveMembershipStatusFilter(t *testing.T) {
	for _, status := range []models.MembershipStatus{
		models.MembershipStatusApplied,
		models.MembershipStatusInterviewing,
		models.MembershipStatusRejected,
		models.MembershipStatusInactive,
	} {
		store := newFakeStore()
		user := store.addUser(models.RoleStudent, false)
		community := uuid.New()
		event := store.addEvent(store.addUser(models.RoleOrganizer, false), &community)
		store.memberships = append(store.memberships, fakeMembership{
			communityID: community, userID: user, role: models.MembershipRolePresident, status: status,
		})

		set, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), user)
		if err != nil {
			t.Fatalf("resolve (%s): %v", status, err)
		}
		if _, ok := set[event]; ok {
			t.Errorf("membership status %s should not confer access", status)
		}
	}
}

func TestResolveOrganizerApprovedOverridesRoleFilter(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(models.RoleStudent, false)
	community := uuid.New()
	event := store.addEvent(store.addUser(models.RoleOrganizer, false), &community)
	store.memberships = append(store.memberships, fakeMembership{
		communityID: community, userID: user, role: models.MembershipRoleMember, status: models.MembershipStatusApproved,
	})
	resolver := NewResolver(store)

	set, err := resolver.ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantSet(t, set) // plain Member, not approved: no access

	g := store.users[user]
	g.OrganizerApproved = true
	store.users[user] = g

	set, err = resolver.ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve after approval: %v", err)
	}
	wantSet(t, set, event) // blanket override: all approved memberships count
}

func TestResolveMultipleCommunitiesUnion(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(models.RoleStudent, false)
	c1, c2 := uuid.New(), uuid.New()
	e1 := store.addEvent(store.addUser(models.RoleOrganizer, false), &c1)
	e2 := store.addEvent(store.addUser(models.RoleOrganizer, false), &c2)
	store.memberships = append(store.memberships,
		fakeMembership{communityID: c1, userID: user, role: models.MembershipRolePresident, status: models.MembershipStatusApproved},
		fakeMembership{communityID: c2, userID: user, role: models.MembershipRoleSecretary, status: models.MembershipStatusApproved},
	)

	set, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantSet(t, set, e1, e2)
}

func TestResolveUnionOfAllThreePasses(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(models.RoleOrganizer, false)
	community := uuid.New()
	owned := store.addEvent(user, nil)
	crewed := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
	hosted := store.addEvent(store.addUser(models.RoleOrganizer, false), &community)
	unrelated := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
	store.crew = append(store.crew, fakeCrew{eventID: crewed, userID: &user, status: models.CrewStatusAccepted})
	store.memberships = append(store.memberships, fakeMembership{
		communityID: community, userID: user, role: models.MembershipRolePresident, status: models.MembershipStatusApproved,
	})

	set, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantSet(t, set, owned, crewed, hosted)
	if _, ok := set[unrelated]; ok {
		t.Error("unrelated event must not be accessible")
	}
}

func TestResolveIdempotent(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(models.RoleOrganizer, false)
	store.addEvent(user, nil)
	store.addEvent(user, nil)
	resolver := NewResolver(store)

	first, err := resolver.ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := resolver.ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("sets differ in size: %d vs %d", len(first), len(second))
	}
	for id := range first {
		if _, ok := second[id]; !ok {
			t.Errorf("event %s missing from second resolve", id)
		}
	}
}

func TestResolveRevocationTakesImmediateEffect(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(models.RoleStudent, false)
	event := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
	store.crew = append(store.crew, fakeCrew{eventID: event, userID: &user, status: models.CrewStatusAccepted})
	resolver := NewResolver(store)

	set, err := resolver.ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantSet(t, set, event)

	store.crew[0].status = models.CrewStatusRejected

	set, err = resolver.ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve after revocation: %v", err)
	}
	wantSet(t, set)
}

func TestResolvePropagatesStoreErrors(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(models.RoleStudent, false)
	store.err = errors.New("connection refused")

	if _, err := NewResolver(store).ResolveAccessibleEvents(context.Background(), user); err == nil {
		t.Fatal("expected store error to propagate")
	}
	if _, err := NewResolver(store).HasEventAccess(context.Background(), user, uuid.New()); err == nil {
		t.Fatal("expected store error to propagate from single-event check")
	}
}

func TestHasEventAccessMatchesResolvedSet(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(models.RoleOrganizer, false)
	community := uuid.New()
	owned := store.addEvent(user, nil)
	crewed := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
	hosted := store.addEvent(store.addUser(models.RoleOrganizer, false), &community)
	unrelated := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
	store.crew = append(store.crew, fakeCrew{eventID: crewed, userID: &user, status: models.CrewStatusAccepted})
	store.memberships = append(store.memberships, fakeMembership{
		communityID: community, userID: user, role: models.MembershipRoleAJK, status: models.MembershipStatusApproved,
	})
	resolver := NewResolver(store)

	set, err := resolver.ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, event := range []uuid.UUID{owned, crewed, hosted, unrelated} {
		ok, err := resolver.HasEventAccess(context.Background(), user, event)
		if err != nil {
			t.Fatalf("has access (%s): %v", event, err)
		}
		_, inSet := set[event]
		if ok != inSet {
			t.Errorf("event %s: HasEventAccess = %v but set membership = %v", event, ok, inSet)
		}
	}
}
