package access

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/campushub/backend/internal/models"
)

func actorFor(store *fakeStore, id uuid.UUID) Actor {
	g := store.users[id]
	return Actor{UserID: id, Role: g.Role, Roles: g.Roles}
}

var allActions = []Action{
	ActionViewEvent,
	ActionEditEvent,
	ActionDeleteEvent,
	ActionManageCrew,
	ActionViewRegistrations,
	ActionBroadcast,
}

func TestAuthorizeAdminBypassesEverything(t *testing.T) {
	store := newFakeStore()
	admin := store.addUser(models.RoleAdmin, false)
	target := Target{EventID: uuid.New(), Audience: AudienceStudents}
	resolver := NewResolver(store)

	for _, action := range allActions {
		d, err := resolver.Authorize(context.Background(), actorFor(store, admin), action, target)
		if err != nil {
			t.Fatalf("authorize %s: %v", action, err)
		}
		if !d.Allowed {
			t.Errorf("admin denied %s: %s", action, d.Reason)
		}
	}
}

func TestAuthorizeAdminInRolesSetOnly(t *testing.T) {
	// Admin granted via the roles set while the primary role is staff.
	actor := Actor{UserID: uuid.New(), Role: models.RoleStaff, Roles: []string{"staff", "admin"}}
	d, err := NewResolver(newFakeStore()).Authorize(context.Background(), actor, ActionDeleteEvent, Target{EventID: uuid.New()})
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if !d.Allowed {
		t.Errorf("roles-set admin denied: %s", d.Reason)
	}
}

func TestAuthorizeDeleteIsAdminOnly(t *testing.T) {
	store := newFakeStore()
	organizer := store.addUser(models.RoleOrganizer, true)
	owned := store.addEvent(organizer, nil)

	d, err := NewResolver(store).Authorize(context.Background(), actorFor(store, organizer), ActionDeleteEvent, Target{EventID: owned})
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if d.Allowed {
		t.Fatal("owner must not be allowed to delete")
	}
	if d.Reason != ReasonActionRestricted {
		t.Errorf("expected reason %s, got %s", ReasonActionRestricted, d.Reason)
	}
}

func TestAuthorizeUnauthenticatedActor(t *testing.T) {
	resolver := NewResolver(newFakeStore())

	// Published events are public even for anonymous viewers.
	d, err := resolver.Authorize(context.Background(), Actor{}, ActionViewEvent, Target{EventID: uuid.New(), Published: true})
	if err != nil {
		t.Fatalf("authorize view: %v", err)
	}
	if !d.Allowed {
		t.Errorf("anonymous view of published event denied: %s", d.Reason)
	}

	// Everything else requires identity.
	for _, action := range []Action{ActionViewEvent, ActionEditEvent, ActionDeleteEvent, ActionManageCrew, ActionViewRegistrations, ActionBroadcast} {
		d, err := resolver.Authorize(context.Background(), Actor{}, action, Target{EventID: uuid.New()})
		if err != nil {
			t.Fatalf("authorize %s: %v", action, err)
		}
		if d.Allowed {
			t.Fatalf("zero actor allowed %s", action)
		}
		if d.Reason != ReasonNotAuthenticated {
			t.Errorf("%s: expected reason %s, got %s", action, ReasonNotAuthenticated, d.Reason)
		}
	}
}

func TestAuthorizeEditScenario(t *testing.T) {
	// U owns E1, is accepted crew of E2, presides over the community hosting
	// E3, and has no relation to E4.
	store := newFakeStore()
	user := store.addUser(models.RoleOrganizer, false)
	community := uuid.New()
	e1 := store.addEvent(user, nil)
	e2 := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
	e3 := store.addEvent(store.addUser(models.RoleOrganizer, false), &community)
	e4 := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
	store.crew = append(store.crew, fakeCrew{eventID: e2, userID: &user, status: models.CrewStatusAccepted})
	store.memberships = append(store.memberships, fakeMembership{
		communityID: community, userID: user, role: models.MembershipRolePresident, status: models.MembershipStatusApproved,
	})
	resolver := NewResolver(store)

	set, err := resolver.ResolveAccessibleEvents(context.Background(), user)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantSet(t, set, e1, e2, e3)

	for _, event := range []uuid.UUID{e1, e2, e3} {
		d, err := resolver.Authorize(context.Background(), actorFor(store, user), ActionEditEvent, Target{EventID: event})
		if err != nil {
			t.Fatalf("authorize edit %s: %v", event, err)
		}
		if !d.Allowed {
			t.Errorf("edit of %s denied: %s", event, d.Reason)
		}
	}

	d, err := resolver.Authorize(context.Background(), actorFor(store, user), ActionEditEvent, Target{EventID: e4})
	if err != nil {
		t.Fatalf("authorize edit e4: %v", err)
	}
	if d.Allowed {
		t.Fatal("edit of unrelated event must be denied")
	}
	if d.Reason != ReasonNotAuthorized {
		t.Errorf("expected reason %s, got %s", ReasonNotAuthorized, d.Reason)
	}
}

func TestAuthorizeViewPublishedIsPublic(t *testing.T) {
	store := newFakeStore()
	stranger := store.addUser(models.RoleStudent, false)
	event := store.addEvent(store.addUser(models.RoleOrganizer, false), nil)
	resolver := NewResolver(store)

	d, err := resolver.Authorize(context.Background(), actorFor(store, stranger), ActionViewEvent, Target{EventID: event, Published: true})
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if !d.Allowed {
		t.Errorf("published event view denied: %s", d.Reason)
	}
}

func TestAuthorizeViewUnpublishedRequiresAccess(t *testing.T) {
	store := newFakeStore()
	organizer := store.addUser(models.RoleOrganizer, false)
	stranger := store.addUser(models.RoleStudent, false)
	event := store.addEvent(organizer, nil)
	resolver := NewResolver(store)
	target := Target{EventID: event, Published: false}

	d, err := resolver.Authorize(context.Background(), actorFor(store, organizer), ActionViewEvent, target)
	if err != nil {
		t.Fatalf("authorize owner: %v", err)
	}
	if !d.Allowed {
		t.Errorf("owner view of pending event denied: %s", d.Reason)
	}

	d, err = resolver.Authorize(context.Background(), actorFor(store, stranger), ActionViewEvent, target)
	if err != nil {
		t.Fatalf("authorize stranger: %v", err)
	}
	if d.Allowed {
		t.Fatal("stranger view of pending event must be denied")
	}
	if d.Reason != ReasonNotAuthorized {
		t.Errorf("expected reason %s, got %s", ReasonNotAuthorized, d.Reason)
	}
}

func TestAuthorizeBroadcastToStudentsRequiresOrganizerRole(t *testing.T) {
	store := newFakeStore()
	community := uuid.New()
	// A student community president: full event access, but no organizer role.
	president := store.addUser(models.RoleStudent, false)
	event := store.addEvent(store.addUser(models.RoleOrganizer, false), &community)
	store.memberships = append(store.memberships, fakeMembership{
		communityID: community, userID: president, role: models.MembershipRolePresident, status: models.MembershipStatusApproved,
	})
	resolver := NewResolver(store)

	// Event-scoped broadcast: allowed through the leadership relation.
	d, err := resolver.Authorize(context.Background(), actorFor(store, president), ActionBroadcast, Target{EventID: event})
	if err != nil {
		t.Fatalf("authorize broadcast: %v", err)
	}
	if !d.Allowed {
		t.Errorf("event broadcast denied: %s", d.Reason)
	}

	// Platform-wide student blast: role-gated regardless of event access.
	d, err = resolver.Authorize(context.Background(), actorFor(store, president), ActionBroadcast, Target{EventID: event, Audience: AudienceStudents})
	if err != nil {
		t.Fatalf("authorize student broadcast: %v", err)
	}
	if d.Allowed {
		t.Fatal("student broadcast without organizer role must be denied")
	}
	if d.Reason != ReasonActionRestricted {
		t.Errorf("expected reason %s, got %s", ReasonActionRestricted, d.Reason)
	}
}

func TestAuthorizeBroadcastToStudentsAsOrganizer(t *testing.T) {
	store := newFakeStore()
	organizer := store.addUser(models.RoleOrganizer, false)
	event := store.addEvent(organizer, nil)

	d, err := NewResolver(store).Authorize(context.Background(), actorFor(store, organizer), ActionBroadcast, Target{EventID: event, Audience: AudienceStudents})
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if !d.Allowed {
		t.Errorf("organizer student broadcast denied: %s", d.Reason)
	}
}
