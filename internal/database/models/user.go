package models

import (
	"time"
)

// Role is the access level of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleVet   Role = "vet"
	RoleAdmin Role = "admin"
)

// User represents a registered account. Accounts are never hard-deleted:
// moderation sets BlockedAt / DeletedAt instead. DeletedAt is a plain
// *time.Time rather than gorm.DeletedAt because the admin console must be
// able to list deleted users.
type User struct {
	Email     string     `gorm:"primaryKey" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Nickname  string     `gorm:"not null" json:"nickname"`
	Role      Role       `gorm:"not null;default:user" json:"role"`
	ImgPath   string     `json:"img_path"`
	BlockedAt *time.Time `json:"blocked_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// IsBlocked reports whether the account is blocked at the given instant.
func (u *User) IsBlocked(now time.Time) bool {
	return u.BlockedAt != nil && u.BlockedAt.After(now)
}
