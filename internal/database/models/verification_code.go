package models

import "time"

// VerificationCode is a one-time email verification code. Only the most
// recently created code for an email is considered valid; all codes for the
// email are deleted once one verifies.
type VerificationCode struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"not null;index" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (VerificationCode) TableName() string {
	return "verification_codes"
}
