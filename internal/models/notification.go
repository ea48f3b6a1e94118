package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies what produced a notification.
type NotificationType string

const (
	NotificationTypeBroadcast  NotificationType = "broadcast"
	NotificationTypeCrewInvite NotificationType = "crew_invite"
	NotificationTypeMembership NotificationType = "membership"
)

// Notification is one entry in a user's notification feed.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	EventID   *uuid.UUID       `json:"event_id,omitempty"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
