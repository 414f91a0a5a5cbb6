package models

import "time"

// Comment is a reply on a community post.
type Comment struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Body        string    `gorm:"not null" json:"body"`
	AuthorEmail string    `gorm:"not null;index" json:"author_email"`
	PostID      uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt   time.Time `json:"created_at"`
	Author      User      `gorm:"foreignKey:AuthorEmail;references:Email" json:"-"`
	Post        Post      `gorm:"foreignKey:PostID" json:"-"`
}

// TableName overrides the table name
func (Comment) TableName() string {
	return "comments"
}
