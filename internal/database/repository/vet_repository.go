package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/petmily-app/backend-go/internal/database/models"
)

// VetRepository defines the interface for vet request data operations
type VetRepository interface {
	Create(vet *models.Vet) error
	FindByID(id uint) (*models.Vet, error)
	FindFirstByUserEmail(email string) (*models.Vet, error)
	// ListByStatus returns requests oldest-updated-first so admins review
	// them as a FIFO queue. Empty status means all requests.
	ListByStatus(status models.VetStatus) ([]models.Vet, error)
}

type vetRepository struct {
	db *gorm.DB
}

// NewVetRepository creates a new vet repository instance
func NewVetRepository(db *gorm.DB) VetRepository {
	return &vetRepository{db: db}
}

func (r *vetRepository) Create(vet *models.Vet) error {
	return r.db.Create(vet).Error
}

func (r *vetRepository) FindByID(id uint) (*models.Vet, error) {
	var vet models.Vet
	err := r.db.First(&vet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVetNotFound
		}
		return nil, err
	}
	return &vet, nil
}

func (r *vetRepository) FindFirstByUserEmail(email string) (*models.Vet, error) {
	var vet models.Vet
	err := r.db.Where("user_email = ?", email).
		Order("id ASC").
		First(&vet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVetNotFound
		}
		return nil, err
	}
	return &vet, nil
}

func (r *vetRepository) ListByStatus(status models.VetStatus) ([]models.Vet, error) {
	var vets []models.Vet
	query := r.db.Order("updated_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&vets).Error
	return vets, err
}

// Repository errors
var (
	ErrVetNotFound = errors.New("vet request not found")
)
