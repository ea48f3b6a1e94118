package notifications

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/backend/internal/models"
)

// Repository handles notification persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notifications repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts one notification.
func (r *Repository) Create(ctx context.Context, n *models.Notification) error {
	const q = `INSERT INTO notifications (id, user_id, event_id, title, body, type)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, n.UserID, n.EventID, n.Title, n.Body, n.Type).
		Scan(&n.ID, &n.CreatedAt)
}

// CreateBatch inserts one notification per recipient.
func (r *Repository) CreateBatch(ctx context.Context, userIDs []uuid.UUID, eventID *uuid.UUID, title, body string, typ models.NotificationType) error {
	const q = `INSERT INTO notifications (id, user_id, event_id, title, body, type)
		SELECT gen_random_uuid(), unnest($1::uuid[]), $2, $3, $4, $5`
	_, err := r.pool.Exec(ctx, q, userIDs, eventID, title, body, typ)
	return err
}

// ListByUser returns the user's notifications, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	const q = `SELECT id, user_id, event_id, title, body, type, read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.EventID, &n.Title, &n.Body, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead marks a notification as read, scoped to its owner.
func (r *Repository) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	const q = `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, q, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RegistrantUserIDs returns the user ids of an event's active registrants
// (guest registrations with no account are skipped).
func (r *Repository) RegistrantUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	const q = `SELECT DISTINCT user_id FROM registrations
		WHERE event_id = $1 AND user_id IS NOT NULL AND status <> 'cancelled'`
	return r.queryIDs(ctx, q, eventID)
}

// CrewUserIDs returns the user ids of an event's accepted crew.
func (r *Repository) CrewUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	const q = `SELECT DISTINCT user_id FROM event_crew
		WHERE event_id = $1 AND user_id IS NOT NULL AND status = 'accepted'`
	return r.queryIDs(ctx, q, eventID)
}

// StudentUserIDs returns every user holding the student role.
func (r *Repository) StudentUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	const q = `SELECT id FROM users WHERE role = 'student' OR 'student' = ANY(roles)`
	return r.queryIDs(ctx, q)
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
