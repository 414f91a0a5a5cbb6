package service

import (
	"errors"
	"log/slog"

	"github.com/petmily-app/backend-go/internal/database/models"
	"github.com/petmily-app/backend-go/internal/database/repository"
)

// postPageSize is the fixed page size of the community board.
const postPageSize = 10

// PostPage is one page of community posts plus the pagination math the
// frontend needs.
type PostPage struct {
	Total       int           `json:"total"`
	CurrentPage int           `json:"currentPage"`
	PageSize    int           `json:"pageSize"`
	Posts       []models.Post `json:"posts"`
}

// PostService defines the interface for community business logic
type PostService interface {
	Create(authorEmail, title, body string, category models.PostCategory) (*models.Post, error)
	Update(postID uint, authorEmail, title, body string) error
	Delete(postID uint, authorEmail string) error
	// ListByCategory pages over the full category at a fixed size of 10.
	// Empty category means every board.
	ListByCategory(category models.PostCategory, page int) (*PostPage, error)
	// GetByID returns (nil, nil) when the post does not exist.
	GetByID(postID uint) (*models.Post, error)
	Report(postID uint, reason, reporterEmail string) (*models.ReportPost, error)
	CreateComment(postID uint, authorEmail, body string) (*models.Comment, error)
	ListComments(postID uint) ([]models.Comment, error)
	ReportComment(commentID uint, reason, reporterEmail string) (*models.ReportComment, error)
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	reportRepo  repository.ReportRepository
	logger      *slog.Logger
}

// NewPostService creates a new post service instance
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	reportRepo repository.ReportRepository,
	logger *slog.Logger,
) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		reportRepo:  reportRepo,
		logger:      logger,
	}
}

func (s *postService) Create(authorEmail, title, body string, category models.PostCategory) (*models.Post, error) {
	post := &models.Post{
		Title:       title,
		Body:        body,
		Category:    category,
		AuthorEmail: authorEmail,
	}

	if err := s.postRepo.Create(post); err != nil {
		s.logger.Error("❌ [PostService] Failed to create post", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [PostService] Post created", "post_id", post.ID, "author", authorEmail)
	return post, nil
}

func (s *postService) Update(postID uint, authorEmail, title, body string) error {
	// Ownership lives in the query predicate; a non-author update matches
	// zero rows and surfaces as not-found.
	if err := s.postRepo.Update(postID, authorEmail, title, body); err != nil {
		s.logger.Warn("⚠️ [PostService] Post update rejected", "post_id", postID, "author", authorEmail, "error", err)
		return err
	}
	return nil
}

func (s *postService) Delete(postID uint, authorEmail string) error {
	if err := s.postRepo.Delete(postID, authorEmail); err != nil {
		s.logger.Warn("⚠️ [PostService] Post delete rejected", "post_id", postID, "author", authorEmail, "error", err)
		return err
	}
	return nil
}

func (s *postService) ListByCategory(category models.PostCategory, page int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}

	// The board fetches the whole category and slices in memory. Fine at
	// the platform's scale; push the offset into the query if boards grow.
	posts, err := s.postRepo.ListByCategory(category)
	if err != nil {
		return nil, err
	}

	skip := (page - 1) * postPageSize
	end := skip + postPageSize
	if skip > len(posts) {
		skip = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	return &PostPage{
		Total:       len(posts),
		CurrentPage: page,
		PageSize:    postPageSize,
		Posts:       posts[skip:end],
	}, nil
}

func (s *postService) GetByID(postID uint) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) Report(postID uint, reason, reporterEmail string) (*models.ReportPost, error) {
	existingPost, err := s.postRepo.FindByID(postID)
	if err != nil {
		s.logger.Warn("⚠️ [PostService] Report target missing", "post_id", postID)
		return nil, err
	}

	if existingPost.AuthorEmail == reporterEmail {
		s.logger.Warn("⚠️ [PostService] Self-report rejected", "post_id", postID, "reporter", reporterEmail)
		return nil, ErrSelfReport
	}

	report := &models.Report{
		Content: reason,
		Status:  models.ReportStatusPending,
	}
	link, err := s.reportRepo.CreateForPost(report, postID)
	if err != nil {
		s.logger.Error("❌ [PostService] Failed to create report", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [PostService] Post reported", "post_id", postID, "report_id", report.ID)
	return link, nil
}

func (s *postService) CreateComment(postID uint, authorEmail, body string) (*models.Comment, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:        body,
		AuthorEmail: authorEmail,
		PostID:      postID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		s.logger.Error("❌ [PostService] Failed to create comment", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [PostService] Comment created", "post_id", postID, "comment_id", comment.ID)
	return comment, nil
}

func (s *postService) ListComments(postID uint) ([]models.Comment, error) {
	return s.commentRepo.ListByPostID(postID)
}

func (s *postService) ReportComment(commentID uint, reason, reporterEmail string) (*models.ReportComment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		s.logger.Warn("⚠️ [PostService] Report target missing", "comment_id", commentID)
		return nil, err
	}

	if comment.AuthorEmail == reporterEmail {
		s.logger.Warn("⚠️ [PostService] Self-report rejected", "comment_id", commentID, "reporter", reporterEmail)
		return nil, ErrSelfReport
	}

	report := &models.Report{
		Content: reason,
		Status:  models.ReportStatusPending,
	}
	link, err := s.reportRepo.CreateForComment(report, commentID)
	if err != nil {
		s.logger.Error("❌ [PostService] Failed to create report", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [PostService] Comment reported", "comment_id", commentID, "report_id", report.ID)
	return link, nil
}

// Service errors
var (
	ErrSelfReport = errors.New("cannot report your own content")
)
