package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/petmily-app/backend-go/internal/database/models"
)

// VerificationCodeRepository defines the interface for verification code operations
type VerificationCodeRepository interface {
	Create(code *models.VerificationCode) error
	FindLatestByEmail(email string) (*models.VerificationCode, error)
	DeleteAllByEmail(email string) error
}

type verificationCodeRepository struct {
	db *gorm.DB
}

// NewVerificationCodeRepository creates a new verification code repository instance
func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Create(code *models.VerificationCode) error {
	return r.db.Create(code).Error
}

// FindLatestByEmail returns the newest code for the email; older codes are
// superseded and never accepted.
func (r *verificationCodeRepository) FindLatestByEmail(email string) (*models.VerificationCode, error) {
	var code models.VerificationCode
	err := r.db.Where("email = ?", email).
		Order("created_at DESC, id DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *verificationCodeRepository) DeleteAllByEmail(email string) error {
	return r.db.Where("email = ?", email).
		Delete(&models.VerificationCode{}).Error
}

// Repository errors
var (
	ErrCodeNotFound = errors.New("verification code not found")
)
