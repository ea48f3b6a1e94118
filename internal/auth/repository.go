package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/backend/internal/models"
)

// Repository handles user persistence. The roles array is the authoritative
// multi-role set; reads always return a reconciled view where the primary
// role is present in the set.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, email, password_hash, full_name, role, roles, is_organizer_approved, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Role, &u.Roles, &u.IsOrganizerApproved, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	reconcileRoles(&u)
	return &u, nil
}

// reconcileRoles makes sure the primary role appears in the roles set, so
// callers only ever see a consistent view of the two fields.
func reconcileRoles(u *models.User) {
	for _, r := range u.Roles {
		if models.Role(r) == u.Role {
			return
		}
	}
	u.Roles = append(u.Roles, string(u.Role))
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, q, email))
}

// List returns all users (admin view).
func (r *Repository) List(ctx context.Context) ([]models.UserPublic, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY full_name, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.UserPublic
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u.ToPublic())
	}
	return list, rows.Err()
}

// Create inserts a new user with the given primary role.
func (r *Repository) Create(ctx context.Context, email, passwordHash, fullName string, role models.Role) (*models.User, error) {
	const q = `INSERT INTO users (email, password_hash, full_name, role, roles)
		VALUES ($1, $2, $3, $4, ARRAY[$4])
		RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, email, passwordHash, fullName, string(role)))
}

// SetOrganizerApproval sets the organizer approval flag (admin review).
func (r *Repository) SetOrganizerApproval(ctx context.Context, userID uuid.UUID, approved bool) error {
	const q = `UPDATE users SET is_organizer_approved = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, approved, userID)
	return err
}
