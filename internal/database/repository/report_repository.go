package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/petmily-app/backend-go/internal/database/models"
)

// StatusCompleted is a synthetic report filter meaning "accepted or
// rejected" — everything an admin has already handled.
const StatusCompleted = "completed"

// ReportedPost is the joined projection the admin report queue shows for a
// reported post: the report itself, the offending post and a summary of its
// author.
type ReportedPost struct {
	ReportContent   string              `json:"report_content"`
	ReportStatus    models.ReportStatus `json:"report_status"`
	ReportedAt      time.Time           `json:"reported_at"`
	Category        models.PostCategory `json:"category"`
	Title           string              `json:"title"`
	Body            string              `json:"body"`
	PostCreatedAt   time.Time           `json:"post_created_at"`
	AuthorEmail     string              `json:"author_email"`
	AuthorNickname  string              `json:"author_nickname"`
	AuthorImgPath   string              `json:"author_img_path"`
	AuthorBlockedAt *time.Time          `json:"author_blocked_at,omitempty"`
	AuthorDeletedAt *time.Time          `json:"author_deleted_at,omitempty"`
}

// ReportedComment is the joined projection for a reported comment.
type ReportedComment struct {
	ReportContent    string              `json:"report_content"`
	ReportStatus     models.ReportStatus `json:"report_status"`
	ReportedAt       time.Time           `json:"reported_at"`
	Body             string              `json:"body"`
	CommentCreatedAt time.Time           `json:"comment_created_at"`
	AuthorEmail      string              `json:"author_email"`
	AuthorNickname   string              `json:"author_nickname"`
	AuthorImgPath    string              `json:"author_img_path"`
	AuthorBlockedAt  *time.Time          `json:"author_blocked_at,omitempty"`
	AuthorDeletedAt  *time.Time          `json:"author_deleted_at,omitempty"`
}

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	// CreateForPost writes the report and its join row in one transaction.
	CreateForPost(report *models.Report, postID uint) (*models.ReportPost, error)
	CreateForComment(report *models.Report, commentID uint) (*models.ReportComment, error)
	ListReportedPosts(status string, offset, limit int) ([]ReportedPost, error)
	CountReportedPosts(status string) (int64, error)
	ListReportedComments(status string, offset, limit int) ([]ReportedComment, error)
	CountReportedComments(status string) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CreateForPost(report *models.Report, postID uint) (*models.ReportPost, error) {
	var link models.ReportPost
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		link = models.ReportPost{ReportID: report.ID, PostID: postID}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *reportRepository) CreateForComment(report *models.Report, commentID uint) (*models.ReportComment, error) {
	var link models.ReportComment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		link = models.ReportComment{ReportID: report.ID, CommentID: commentID}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *reportRepository) ListReportedPosts(status string, offset, limit int) ([]ReportedPost, error) {
	var rows []ReportedPost
	err := applyReportStatus(r.reportedPostsQuery(), status).
		Select(`reports.content AS report_content,
			reports.status AS report_status,
			reports.created_at AS reported_at,
			posts.category AS category,
			posts.title AS title,
			posts.body AS body,
			posts.created_at AS post_created_at,
			users.email AS author_email,
			users.nickname AS author_nickname,
			users.img_path AS author_img_path,
			users.blocked_at AS author_blocked_at,
			users.deleted_at AS author_deleted_at`).
		Order("reports.updated_at ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) CountReportedPosts(status string) (int64, error) {
	var count int64
	err := applyReportStatus(r.reportedPostsQuery(), status).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) ListReportedComments(status string, offset, limit int) ([]ReportedComment, error) {
	var rows []ReportedComment
	err := applyReportStatus(r.reportedCommentsQuery(), status).
		Select(`reports.content AS report_content,
			reports.status AS report_status,
			reports.created_at AS reported_at,
			comments.body AS body,
			comments.created_at AS comment_created_at,
			users.email AS author_email,
			users.nickname AS author_nickname,
			users.img_path AS author_img_path,
			users.blocked_at AS author_blocked_at,
			users.deleted_at AS author_deleted_at`).
		Order("reports.updated_at ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) CountReportedComments(status string) (int64, error) {
	var count int64
	err := applyReportStatus(r.reportedCommentsQuery(), status).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) reportedPostsQuery() *gorm.DB {
	return r.db.Table("report_posts").
		Joins("JOIN reports ON reports.id = report_posts.report_id").
		Joins("JOIN posts ON posts.id = report_posts.post_id").
		Joins("JOIN users ON users.email = posts.author_email")
}

func (r *reportRepository) reportedCommentsQuery() *gorm.DB {
	return r.db.Table("report_comments").
		Joins("JOIN reports ON reports.id = report_comments.report_id").
		Joins("JOIN comments ON comments.id = report_comments.comment_id").
		Joins("JOIN users ON users.email = comments.author_email")
}

func applyReportStatus(query *gorm.DB, status string) *gorm.DB {
	switch status {
	case "":
		return query
	case StatusCompleted:
		return query.Where("reports.status IN ?", []models.ReportStatus{
			models.ReportStatusAccepted,
			models.ReportStatusRejected,
		})
	default:
		return query.Where("reports.status = ?", status)
	}
}
