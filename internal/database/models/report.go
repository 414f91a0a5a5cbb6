package models

import "time"

// ReportStatus is the review state of a content report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusAccepted ReportStatus = "accepted"
	ReportStatusRejected ReportStatus = "rejected"
)

// Report is a moderation report against a post or comment. The target is
// linked through exactly one ReportPost or ReportComment row.
type Report struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	Content   string       `gorm:"not null" json:"content"`
	Status    ReportStatus `gorm:"not null;default:pending" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TableName overrides the table name
func (Report) TableName() string {
	return "reports"
}

// ReportPost links a report to the post it targets.
type ReportPost struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	ReportID uint   `gorm:"not null;index" json:"report_id"`
	PostID   uint   `gorm:"not null" json:"post_id"`
	Report   Report `gorm:"foreignKey:ReportID" json:"-"`
	Post     Post   `gorm:"foreignKey:PostID" json:"-"`
}

// TableName overrides the table name
func (ReportPost) TableName() string {
	return "report_posts"
}

// ReportComment links a report to the comment it targets.
type ReportComment struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	ReportID  uint    `gorm:"not null;index" json:"report_id"`
	CommentID uint    `gorm:"not null" json:"comment_id"`
	Report    Report  `gorm:"foreignKey:ReportID" json:"-"`
	Comment   Comment `gorm:"foreignKey:CommentID" json:"-"`
}

// TableName overrides the table name
func (ReportComment) TableName() string {
	return "report_comments"
}
