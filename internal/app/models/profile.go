package models

import (
	"time"
)

// Profile defines the identity record based on the 'profiles' table.
// Profiles are provisioned once and never hard-deleted; accounts are
// disabled by revoking their credentials instead.
type Profile struct {
	ID           string     `json:"id" db:"id" example:"4f7c31a2-0b86-4f62-9f0f-1c2d3e4a5b6c"` // Opaque UUID primary key
	Role         RoleType   `json:"role" db:"role" example:"STUDENT"`                          // Member of the closed role enumeration
	FullName     string     `json:"fullName" db:"full_name" example:"Carlos Ribeiro"`
	Email        string     `json:"email" db:"email" example:"carlos@tatame.app"`
	PasswordHash string     `json:"-" db:"password_hash"` // Nullable until the person activates a login
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	AvatarURL    *string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
