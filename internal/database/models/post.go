package models

import "time"

// PostCategory is the board a post belongs to.
type PostCategory string

const (
	CategoryFree PostCategory = "free"
	CategoryInfo PostCategory = "info"
)

// Post is a community post. Created, updated and deleted only by its author.
type Post struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Body        string       `gorm:"not null" json:"body"`
	Category    PostCategory `gorm:"not null;index" json:"category"`
	AuthorEmail string       `gorm:"not null;index" json:"author_email"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Author      User         `gorm:"foreignKey:AuthorEmail;references:Email" json:"-"`
}

// TableName overrides the table name
func (Post) TableName() string {
	return "posts"
}
