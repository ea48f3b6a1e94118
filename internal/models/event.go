package models

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus is the review status of an event.
type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusApproved  EventStatus = "approved"
	EventStatusRejected  EventStatus = "rejected"
	EventStatusCompleted EventStatus = "completed"
)

// Event represents a campus event. Every event has exactly one organizer;
// CommunityID is set when a community hosts the event.
type Event struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      *time.Time  `json:"ends_at,omitempty"`
	OrganizerID uuid.UUID   `json:"organizer_id"`
	CommunityID *uuid.UUID  `json:"community_id,omitempty"`
	VenueID     *uuid.UUID  `json:"venue_id,omitempty"`
	Status      EventStatus `json:"status"`
	PosterKey   *string     `json:"poster_key,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsPublished reports whether the event is in its public, approved state.
func (e *Event) IsPublished() bool {
	return e.Status == EventStatusApproved
}
