package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user role on the platform.
type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
)

// User represents a platform user. Roles is the authoritative multi-role set;
// Role is the primary role and is always present in Roles.
type User struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	Password            string    `json:"-"`
	FullName            string    `json:"full_name"`
	Role                Role      `json:"role"`
	Roles               []string  `json:"roles"`
	IsOrganizerApproved bool      `json:"is_organizer_approved"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	FullName            string    `json:"full_name"`
	Role                Role      `json:"role"`
	Roles               []string  `json:"roles"`
	IsOrganizerApproved bool      `json:"is_organizer_approved"`
	CreatedAt           time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:                  u.ID,
		Email:               u.Email,
		FullName:            u.FullName,
		Role:                u.Role,
		Roles:               u.Roles,
		IsOrganizerApproved: u.IsOrganizerApproved,
		CreatedAt:           u.CreatedAt,
	}
}

// HasRole reports whether the user holds the given role, checking the primary
// role and the roles set.
func (u *User) HasRole(role Role) bool {
	if u.Role == role {
		return true
	}
	for _, r := range u.Roles {
		if Role(r) == role {
			return true
		}
	}
	return false
}
