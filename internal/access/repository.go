package access

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements Store against PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an access relation store.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EventsByOrganizer returns ids of events the user organizes.
func (r *Repository) EventsByOrganizer(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const q = `SELECT id FROM events WHERE organizer_id = $1`
	return r.queryIDs(ctx, q, userID)
}

// AcceptedCrewEvents returns ids of events where the user is accepted crew or
// talent. Placeholder crew rows have NULL user_id and never match.
func (r *Repository) AcceptedCrewEvents(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const q = `SELECT event_id FROM event_crew WHERE user_id = $1 AND status = 'accepted'`
	return r.queryIDs(ctx, q, userID)
}

// ApprovedMemberships returns the user's approved community memberships.
func (r *Repository) ApprovedMemberships(ctx context.Context, userID uuid.UUID) ([]Membership, error) {
	const q = `SELECT community_id, role FROM community_memberships WHERE user_id = $1 AND status = 'Approved'`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.CommunityID, &m.Role); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// EventsByCommunities returns ids of events hosted by any of the communities.
func (r *Repository) EventsByCommunities(ctx context.Context, communityIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(communityIDs) == 0 {
		return nil, nil
	}
	const q = `SELECT id FROM events WHERE community_id = ANY($1)`
	return r.queryIDs(ctx, q, communityIDs)
}

// GetUser returns the user's grants, or nil when the user does not exist.
func (r *Repository) GetUser(ctx context.Context, userID uuid.UUID) (*Grants, error) {
	const q = `SELECT role, roles, is_organizer_approved FROM users WHERE id = $1`
	var g Grants
	err := r.pool.QueryRow(ctx, q, userID).Scan(&g.Role, &g.Roles, &g.OrganizerApproved)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repository) queryIDs(ctx context.Context, q string, args ...any) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
