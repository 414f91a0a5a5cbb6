package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/petmily-app/backend-go/internal/database/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id uint) (*models.Post, error)
	// ListByCategory returns every post in the category, newest first.
	// Empty category means all posts.
	ListByCategory(category models.PostCategory) ([]models.Post, error)
	// Update and Delete carry the ownership predicate in the query itself:
	// a non-author caller matches zero rows and gets ErrPostNotFound.
	Update(id uint, authorEmail, title, body string) error
	Delete(id uint, authorEmail string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByCategory(category models.PostCategory) ([]models.Post, error) {
	var posts []models.Post
	query := r.db.Order("created_at DESC, id DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(id uint, authorEmail, title, body string) error {
	result := r.db.Model(&models.Post{}).
		Where("id = ? AND author_email = ?", id, authorEmail).
		Updates(map[string]interface{}{"title": title, "body": body})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(id uint, authorEmail string) error {
	result := r.db.Where("id = ? AND author_email = ?", id, authorEmail).
		Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Repository errors
var (
	ErrPostNotFound = errors.New("post not found")
)
