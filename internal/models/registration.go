package models

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationStatus is the state of an event registration.
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusAttended   RegistrationStatus = "attended"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

// Registration represents a user (or guest) registered for an event.
// UserID is nil for guest registrations submitted with just name and email.
type Registration struct {
	ID        uuid.UUID          `json:"id"`
	EventID   uuid.UUID          `json:"event_id"`
	UserID    *uuid.UUID         `json:"user_id,omitempty"`
	FullName  string             `json:"full_name"`
	Email     string             `json:"email"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
