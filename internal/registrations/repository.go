package registrations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/backend/internal/models"
)

// Repository handles event registration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const registrationColumns = `id, event_id, user_id, full_name, email, status, created_at, updated_at`

func scanRegistration(row interface{ Scan(dest ...any) error }) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.FullName, &reg.Email, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Create inserts a registration. The (event, email) pair is unique.
func (r *Repository) Create(ctx context.Context, reg *models.Registration) error {
	const q = `INSERT INTO registrations (id, event_id, user_id, full_name, email, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, 'registered')
		RETURNING id, status, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, reg.EventID, reg.UserID, reg.FullName, reg.Email).
		Scan(&reg.ID, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
}

// GetByID returns a registration by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	return scanRegistration(r.pool.QueryRow(ctx, q, id))
}

// ListByEvent returns all registrations of an event.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *reg)
	}
	return list, rows.Err()
}

// UpdateStatus sets the status of a registration.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RegistrationStatus) error {
	const q = `UPDATE registrations SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, status, id)
	return err
}
