package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/petmily-app/backend-go/internal/database/models"
)

// UserFilter narrows the admin user listing. Filters are applied
// first-match-wins in a fixed priority order: Role beats Blocked beats
// Deleted; only the first one present takes effect. Search is ANDed on top
// as a substring match on email or nickname.
type UserFilter struct {
	Role    string // "user" | "vet" | "admin", empty = unset
	Blocked string // "true" | "false", empty = unset
	Deleted string // "true" | "false", empty = unset
	Search  string
	OrderBy string // "asc" | "desc" on created_at, default desc
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateRole(email string, role models.Role) error
	UpdateBlockedAt(email string, blockedAt *time.Time) error
	UpdateDeletedAt(email string, deletedAt *time.Time) error
	List(filter UserFilter, offset, limit int) ([]models.User, error)
	Count(filter UserFilter) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdateRole(email string, role models.Role) error {
	result := r.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateBlockedAt sets or clears (nil) the block expiry.
func (r *userRepository) UpdateBlockedAt(email string, blockedAt *time.Time) error {
	return r.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("blocked_at", blockedAt).Error
}

func (r *userRepository) UpdateDeletedAt(email string, deletedAt *time.Time) error {
	return r.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("deleted_at", deletedAt).Error
}

func (r *userRepository) List(filter UserFilter, offset, limit int) ([]models.User, error) {
	var users []models.User
	err := applyUserFilter(r.db, filter).
		Order("created_at " + orderDirection(filter.OrderBy)).
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) Count(filter UserFilter) (int64, error) {
	var count int64
	err := applyUserFilter(r.db, filter).
		Model(&models.User{}).
		Count(&count).Error
	return count, err
}

// applyUserFilter mirrors the admin console contract: exactly one of
// role/blocked/deleted is applied (first match in that order), search always
// combines with AND.
func applyUserFilter(db *gorm.DB, filter UserFilter) *gorm.DB {
	query := db

	switch {
	case filter.Role != "":
		query = query.Where("role = ?", filter.Role)
	case filter.Blocked == "false":
		query = query.Where("blocked_at IS NULL")
	case filter.Blocked == "true":
		query = query.Where("blocked_at IS NOT NULL")
	case filter.Deleted == "false":
		query = query.Where("deleted_at IS NULL")
	case filter.Deleted == "true":
		query = query.Where("deleted_at IS NOT NULL")
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR nickname LIKE ?", pattern, pattern)
	}

	return query
}

func orderDirection(orderBy string) string {
	if strings.ToLower(orderBy) == "asc" {
		return "asc"
	}
	return "desc"
}

// Repository errors
var (
	ErrUserNotFound = errors.New("user not found")
)
