package crew

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/backend/internal/models"
)

// Repository handles event crew persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a crew repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const crewColumns = `id, event_id, user_id, name, role, type, status, created_at, updated_at`

func scanCrew(row interface{ Scan(dest ...any) error }) (*models.EventCrew, error) {
	var m models.EventCrew
	err := row.Scan(&m.ID, &m.EventID, &m.UserID, &m.Name, &m.Role, &m.Type, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a crew record. UserID may be nil for a placeholder invitee.
func (r *Repository) Create(ctx context.Context, m *models.EventCrew) error {
	const q = `INSERT INTO event_crew (id, event_id, user_id, name, role, type, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, m.EventID, m.UserID, m.Name, m.Role, m.Type, m.Status).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// GetByID returns a crew record by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.EventCrew, error) {
	const q = `SELECT ` + crewColumns + ` FROM event_crew WHERE id = $1`
	return scanCrew(r.pool.QueryRow(ctx, q, id))
}

// ListByEvent returns all crew records of an event.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.EventCrew, error) {
	const q = `SELECT ` + crewColumns + ` FROM event_crew WHERE event_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EventCrew
	for rows.Next() {
		m, err := scanCrew(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

// UpdateStatus sets the status of a crew record.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CrewStatus) error {
	const q = `UPDATE event_crew SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, status, id)
	return err
}

// Delete removes a crew record.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM event_crew WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}
