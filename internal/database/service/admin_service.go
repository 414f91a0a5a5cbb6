package service

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/petmily-app/backend-go/internal/database/models"
	"github.com/petmily-app/backend-go/internal/database/repository"
)

// blockExtension is how much each "blocked=true" action adds. Repeated
// actions stack on the existing expiry rather than replacing it.
const blockExtension = 14 * 24 * time.Hour

// permanentBlockDate marks an account blocked for good.
var permanentBlockDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// ModerationAction describes what to do to a user account. Blocked accepts
// "true" (extend by two weeks), "false" (unblock) and "permanent"; Deleted
// accepts "true" (soft delete). Empty fields are ignored.
type ModerationAction struct {
	Blocked string
	Deleted string
}

// ReportedPostPage is a page of the reported-posts queue.
type ReportedPostPage struct {
	Total   int64                     `json:"total"`
	Reports []repository.ReportedPost `json:"reports"`
}

// ReportedCommentPage is a page of the reported-comments queue.
type ReportedCommentPage struct {
	Total   int64                        `json:"total"`
	Reports []repository.ReportedComment `json:"reports"`
}

// AdminService defines the interface for admin console business logic
type AdminService interface {
	ListVetRequests(status models.VetStatus) ([]models.Vet, error)
	// ReviewVetRequest sets the request status. Accepting also promotes the
	// owner to the vet role; both writes happen in one transaction so the
	// accepted status and the role cannot diverge.
	ReviewVetRequest(id uint, status models.VetStatus) (*models.Vet, error)
	ListUsers(filter repository.UserFilter, page, pageSize int) ([]models.User, error)
	CountUsers(filter repository.UserFilter) (int64, error)
	ModerateUser(email string, action ModerationAction) error
	ListReportedPosts(status string, page, pageSize int) (*ReportedPostPage, error)
	ListReportedComments(status string, page, pageSize int) (*ReportedCommentPage, error)
}

type adminService struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	vetRepo    repository.VetRepository
	reportRepo repository.ReportRepository
	logger     *slog.Logger
}

// NewAdminService creates a new admin service instance
func NewAdminService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	vetRepo repository.VetRepository,
	reportRepo repository.ReportRepository,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		db:         db,
		userRepo:   userRepo,
		vetRepo:    vetRepo,
		reportRepo: reportRepo,
		logger:     logger,
	}
}

func (s *adminService) ListVetRequests(status models.VetStatus) ([]models.Vet, error) {
	return s.vetRepo.ListByStatus(status)
}

func (s *adminService) ReviewVetRequest(id uint, status models.VetStatus) (*models.Vet, error) {
	s.logger.Info("🩺 [AdminService] Reviewing vet request", "vet_id", id, "status", status)

	vet, err := s.vetRepo.FindByID(id)
	if err != nil {
		s.logger.Warn("⚠️ [AdminService] Vet request not found", "vet_id", id)
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Vet{}).
			Where("id = ?", id).
			Update("status", status).Error; err != nil {
			return err
		}

		if status == models.VetStatusAccepted {
			result := tx.Model(&models.User{}).
				Where("email = ?", vet.UserEmail).
				Update("role", models.RoleVet)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return repository.ErrUserNotFound
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("❌ [AdminService] Vet review failed", "vet_id", id, "error", err)
		return nil, err
	}

	vet.Status = status
	s.logger.Info("✅ [AdminService] Vet request reviewed", "vet_id", id, "status", status)
	return vet, nil
}

func (s *adminService) ListUsers(filter repository.UserFilter, page, pageSize int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	return s.userRepo.List(filter, offset, pageSize)
}

func (s *adminService) CountUsers(filter repository.UserFilter) (int64, error) {
	return s.userRepo.Count(filter)
}

func (s *adminService) ModerateUser(email string, action ModerationAction) error {
	s.logger.Info("🔨 [AdminService] Moderating user", "email", email, "blocked", action.Blocked, "deleted", action.Deleted)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		s.logger.Warn("⚠️ [AdminService] User not found", "email", email)
		return err
	}

	switch action.Blocked {
	case "true":
		// Cumulative escalation: a second block adds two weeks on top of
		// the current expiry, not from now.
		base := time.Now()
		if user.BlockedAt != nil {
			base = *user.BlockedAt
		}
		expiry := base.Add(blockExtension)
		if err := s.userRepo.UpdateBlockedAt(email, &expiry); err != nil {
			return err
		}
	case "false":
		if err := s.userRepo.UpdateBlockedAt(email, nil); err != nil {
			return err
		}
	case "permanent":
		expiry := permanentBlockDate
		if err := s.userRepo.UpdateBlockedAt(email, &expiry); err != nil {
			return err
		}
	case "":
		// No block change requested.
	default:
		return ErrInvalidModerationAction
	}

	if action.Deleted == "true" {
		now := time.Now()
		if err := s.userRepo.UpdateDeletedAt(email, &now); err != nil {
			return err
		}
	}

	s.logger.Info("✅ [AdminService] User moderated", "email", email)
	return nil
}

func (s *adminService) ListReportedPosts(status string, page, pageSize int) (*ReportedPostPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	reports, err := s.reportRepo.ListReportedPosts(status, offset, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.reportRepo.CountReportedPosts(status)
	if err != nil {
		return nil, err
	}

	return &ReportedPostPage{Total: total, Reports: reports}, nil
}

func (s *adminService) ListReportedComments(status string, page, pageSize int) (*ReportedCommentPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	reports, err := s.reportRepo.ListReportedComments(status, offset, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.reportRepo.CountReportedComments(status)
	if err != nil {
		return nil, err
	}

	return &ReportedCommentPage{Total: total, Reports: reports}, nil
}

// Service errors
var (
	ErrInvalidModerationAction = errors.New("invalid moderation action")
)
