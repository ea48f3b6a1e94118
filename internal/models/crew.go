package models

import (
	"time"

	"github.com/google/uuid"
)

// CrewType distinguishes talents (performers, speakers) from working crew.
type CrewType string

const (
	CrewTypeTalent CrewType = "talent"
	CrewTypeCrew   CrewType = "crew"
)

// CrewStatus is the state of a crew invitation or application.
type CrewStatus string

const (
	CrewStatusInvited  CrewStatus = "invited"
	CrewStatusAccepted CrewStatus = "accepted"
	CrewStatusRejected CrewStatus = "rejected"
	CrewStatusApplied  CrewStatus = "applied"
)

// EventCrew links a user to an event as talent or crew. UserID is nil for
// placeholder invitees who have no account yet; placeholders never confer
// event access. Only accepted status confers access.
type EventCrew struct {
	ID        uuid.UUID  `json:"id"`
	EventID   uuid.UUID  `json:"event_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Type      CrewType   `json:"type"`
	Status    CrewStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
