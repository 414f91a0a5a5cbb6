package service

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/petmily-app/backend-go/internal/database/models"
	"github.com/petmily-app/backend-go/internal/database/repository"
)

// Profile is a user together with their first vet application, if any.
type Profile struct {
	User *models.User `json:"user"`
	Vet  *models.Vet  `json:"vet,omitempty"`
}

// ProfileUpdate carries the self-service profile fields. Empty fields are
// left untouched; a non-empty password is re-hashed before it is stored.
type ProfileUpdate struct {
	Password string
	Nickname string
	ImgPath  string
}

// UserService defines the interface for user profile business logic
type UserService interface {
	GetProfile(email string) (*Profile, error)
	UpdateProfile(email string, update ProfileUpdate) (*models.User, error)
	ApplyAsVet(email string, vet VetApplication) (*models.Vet, error)
}

// VetApplication is the credential request a user submits to become a vet.
type VetApplication struct {
	Name         string
	HospitalName string
	Description  string
	Region       string
	ImgPath      string
}

type userService struct {
	userRepo repository.UserRepository
	vetRepo  repository.VetRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo repository.UserRepository,
	vetRepo repository.VetRepository,
	logger *slog.Logger,
) UserService {
	return &userService{
		userRepo: userRepo,
		vetRepo:  vetRepo,
		logger:   logger,
	}
}

func (s *userService) GetProfile(email string) (*Profile, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	vet, err := s.vetRepo.FindFirstByUserEmail(email)
	if err != nil && !errors.Is(err, repository.ErrVetNotFound) {
		return nil, err
	}

	return &Profile{User: user, Vet: vet}, nil
}

func (s *userService) UpdateProfile(email string, update ProfileUpdate) (*models.User, error) {
	s.logger.Info("👤 [UserService] Updating profile", "email", email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		s.logger.Warn("⚠️ [UserService] User not found", "email", email)
		return nil, err
	}

	if update.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcryptCost)
		if err != nil {
			s.logger.Error("❌ [UserService] Failed to hash password", "error", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
	}
	if update.Nickname != "" {
		user.Nickname = update.Nickname
	}
	if update.ImgPath != "" {
		user.ImgPath = update.ImgPath
	}

	if err := s.userRepo.Update(user); err != nil {
		s.logger.Error("❌ [UserService] Failed to update user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [UserService] Profile updated", "email", email)
	return user, nil
}

func (s *userService) ApplyAsVet(email string, application VetApplication) (*models.Vet, error) {
	s.logger.Info("🩺 [UserService] Vet application submitted", "email", email)

	vet := &models.Vet{
		UserEmail:    email,
		Name:         application.Name,
		HospitalName: application.HospitalName,
		Description:  application.Description,
		Region:       application.Region,
		ImgPath:      application.ImgPath,
		Status:       models.VetStatusPending,
	}

	if err := s.vetRepo.Create(vet); err != nil {
		s.logger.Error("❌ [UserService] Failed to create vet application", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [UserService] Vet application created", "email", email, "vet_id", vet.ID)
	return vet, nil
}
