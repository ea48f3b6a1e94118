package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/backend/internal/models"
)

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, title, description, starts_at, ends_at, organizer_id, community_id, venue_id, status, poster_key, created_at, updated_at`

func scanEvent(row interface{ Scan(dest ...any) error }) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt, &e.OrganizerID, &e.CommunityID, &e.VenueID, &e.Status, &e.PosterKey, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event in pending status.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (id, title, description, starts_at, ends_at, organizer_id, community_id, venue_id, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at, updated_at`
	if e.Status == "" {
		e.Status = models.EventStatusPending
	}
	return r.pool.QueryRow(ctx, q, e.Title, e.Description, e.StartsAt, e.EndsAt, e.OrganizerID, e.CommunityID, e.VenueID, e.Status).
		Scan(&e.ID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID returns an event by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, q, id))
}

// ListApproved returns published events, soonest first.
func (r *Repository) ListApproved(ctx context.Context) ([]models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE status = 'approved' ORDER BY starts_at`
	return r.queryEvents(ctx, q)
}

// ListAll returns every event regardless of status (admin view).
func (r *Repository) ListAll(ctx context.Context) ([]models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events ORDER BY starts_at DESC`
	return r.queryEvents(ctx, q)
}

// ListByIDs hydrates events for a resolved accessible-event set, soonest
// first so managed lists are deterministic.
func (r *Repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1) ORDER BY starts_at`
	return r.queryEvents(ctx, q, ids)
}

// Update updates event fields (title, description, schedule, venue).
func (r *Repository) Update(ctx context.Context, id uuid.UUID, title, description string, startsAt, endsAt *time.Time, venueID *uuid.UUID) error {
	const q = `UPDATE events SET
		title = COALESCE(NULLIF($1, ''), title),
		description = COALESCE(NULLIF($2, ''), description),
		starts_at = COALESCE($3, starts_at),
		ends_at = COALESCE($4, ends_at),
		venue_id = COALESCE($5, venue_id),
		updated_at = NOW()
		WHERE id = $6`
	_, err := r.pool.Exec(ctx, q, title, description, startsAt, endsAt, venueID, id)
	return err
}

// UpdateStatus moves an event through review (admin).
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.EventStatus) error {
	const q = `UPDATE events SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, status, id)
	return err
}

// SetPosterKey records the S3 object key of the event poster.
func (r *Repository) SetPosterKey(ctx context.Context, id uuid.UUID, key string) error {
	const q = `UPDATE events SET poster_key = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, key, id)
	return err
}

// Delete removes an event by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM events WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

func (r *Repository) queryEvents(ctx context.Context, q string, args ...any) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}
