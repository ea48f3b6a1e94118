package communities

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/backend/internal/models"
)

// Repository handles community and community_membership persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a communities repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create creates a community.
func (r *Repository) Create(ctx context.Context, community *models.Community) error {
	const q = `INSERT INTO communities (id, name, description, created_by)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, community.Name, community.Description, community.CreatedBy).
		Scan(&community.ID, &community.CreatedAt, &community.UpdatedAt)
}

// GetByID returns a community by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	const q = `SELECT id, name, description, created_by, created_at, updated_at FROM communities WHERE id = $1`
	var c models.Community
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all communities.
func (r *Repository) List(ctx context.Context) ([]models.Community, error) {
	const q = `SELECT id, name, description, created_by, created_at, updated_at FROM communities ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Community
	for rows.Next() {
		var c models.Community
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Apply creates a membership application. The (community, user) pair is
// unique; re-applying after rejection re-opens the existing record.
func (r *Repository) Apply(ctx context.Context, communityID, userID uuid.UUID) (*models.CommunityMembership, error) {
	const q = `INSERT INTO community_memberships (id, community_id, user_id, role, status)
		VALUES (gen_random_uuid(), $1, $2, 'Member', 'Applied')
		ON CONFLICT (community_id, user_id)
		DO UPDATE SET status = 'Applied', updated_at = NOW()
		RETURNING id, community_id, user_id, role, status, created_at, updated_at`
	var m models.CommunityMembership
	err := r.pool.QueryRow(ctx, q, communityID, userID).
		Scan(&m.ID, &m.CommunityID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMembership returns a membership by ID.
func (r *Repository) GetMembership(ctx context.Context, id uuid.UUID) (*models.CommunityMembership, error) {
	const q = `SELECT id, community_id, user_id, role, status, created_at, updated_at
		FROM community_memberships WHERE id = $1`
	var m models.CommunityMembership
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&m.ID, &m.CommunityID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMembership sets role and status on a membership (review workflow).
func (r *Repository) UpdateMembership(ctx context.Context, id uuid.UUID, role models.MembershipRole, status models.MembershipStatus) error {
	const q = `UPDATE community_memberships SET role = $1, status = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.pool.Exec(ctx, q, role, status, id)
	return err
}

// IsPresident returns true if the user is an approved President of the community.
func (r *Repository) IsPresident(ctx context.Context, communityID, userID uuid.UUID) (bool, error) {
	const q = `SELECT 1 FROM community_memberships
		WHERE community_id = $1 AND user_id = $2 AND role = 'President' AND status = 'Approved'`
	var exists int
	err := r.pool.QueryRow(ctx, q, communityID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Member represents a community member with user details (for GET /communities/:id/members).
type Member struct {
	ID       uuid.UUID               `json:"id"`
	UserID   uuid.UUID               `json:"user_id"`
	Email    string                  `json:"email"`
	FullName string                  `json:"full_name"`
	Role     models.MembershipRole   `json:"role"`
	Status   models.MembershipStatus `json:"status"`
	JoinedAt time.Time               `json:"joined_at"`
}

// ListMembers returns members of a community (join community_memberships + users).
func (r *Repository) ListMembers(ctx context.Context, communityID uuid.UUID) ([]Member, error) {
	const q = `SELECT cm.id, cm.user_id, u.email, COALESCE(u.full_name, ''), cm.role, cm.status, cm.created_at
		FROM community_memberships cm
		INNER JOIN users u ON u.id = cm.user_id
		WHERE cm.community_id = $1
		ORDER BY cm.created_at ASC`
	rows, err := r.pool.Query(ctx, q, communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.Email, &m.FullName, &m.Role, &m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
