package venues

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/backend/internal/models"
)

// Repository handles venue persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a venues repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create creates a venue.
func (r *Repository) Create(ctx context.Context, v *models.Venue) error {
	const q = `INSERT INTO venues (id, name, location, capacity)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, v.Name, v.Location, v.Capacity).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

// GetByID returns a venue by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	const q = `SELECT id, name, location, capacity, created_at, updated_at FROM venues WHERE id = $1`
	var v models.Venue
	err := r.pool.QueryRow(ctx, q, id).Scan(&v.ID, &v.Name, &v.Location, &v.Capacity, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns all venues.
func (r *Repository) List(ctx context.Context) ([]models.Venue, error) {
	const q = `SELECT id, name, location, capacity, created_at, updated_at FROM venues ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Venue
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.Capacity, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Update updates venue fields.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, location string, capacity int) error {
	const q = `UPDATE venues SET
		name = COALESCE(NULLIF($1, ''), name),
		location = COALESCE(NULLIF($2, ''), location),
		capacity = CASE WHEN $3 > 0 THEN $3 ELSE capacity END,
		updated_at = NOW()
		WHERE id = $4`
	_, err := r.pool.Exec(ctx, q, name, location, capacity, id)
	return err
}

// Delete removes a venue.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM venues WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}
