package models

import "time"

// VetStatus is the review state of a veterinarian credential request.
type VetStatus string

const (
	VetStatusPending  VetStatus = "pending"
	VetStatusAccepted VetStatus = "accepted"
	VetStatusRejected VetStatus = "rejected"
)

// Vet is a veterinarian verification request. When an admin accepts one, the
// owning user's role is promoted to "vet" in the same transaction, so the
// accepted status and the role stay consistent.
type Vet struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserEmail    string    `gorm:"not null;index" json:"user_email"`
	Name         string    `gorm:"not null" json:"name"`
	HospitalName string    `gorm:"not null" json:"hospital_name"`
	Description  string    `json:"description"`
	Region       string    `json:"region"`
	ImgPath      string    `json:"img_path"`
	Status       VetStatus `gorm:"not null;default:pending;index" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	User         User      `gorm:"foreignKey:UserEmail;references:Email" json:"-"`
}

// TableName overrides the table name
func (Vet) TableName() string {
	return "vets"
}
