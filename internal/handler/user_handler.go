package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petmily-app/backend-go/internal/config"
	"github.com/petmily-app/backend-go/internal/database/repository"
	"github.com/petmily-app/backend-go/internal/database/service"
	"github.com/petmily-app/backend-go/internal/middleware"
)

// UserHandler handles HTTP requests for user profiles and vet applications
type UserHandler struct {
	service service.UserService
	cfg     *config.Config
	logger  *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.UserService, cfg *config.Config, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

type UpdateProfileRequest struct {
	Password string `form:"password" binding:"omitempty,min=8,max=72"`
	Nickname string `form:"nickname" binding:"omitempty,min=2,max=100"`
}

type VetApplicationRequest struct {
	Name         string `form:"name" binding:"required,min=1,max=100"`
	HospitalName string `form:"hospital_name" binding:"required,min=1,max=255"`
	Description  string `form:"description" binding:"omitempty,max=1000"`
	Region       string `form:"region" binding:"omitempty,max=100"`
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)

	profile, err := h.service.GetProfile(email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMe handles PUT /users/me. The body is a multipart form so the
// profile image can ride along; all fields are optional.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error("❌ [UserHandler] Invalid profile update", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile fields"})
		return
	}

	update := service.ProfileUpdate{
		Password: req.Password,
		Nickname: req.Nickname,
	}

	if header, err := c.FormFile("image"); err == nil {
		path, err := saveUploadedImage(c, h.cfg, header)
		if err != nil {
			h.logger.Error("❌ [UserHandler] Image upload failed", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update.ImgPath = path
	}

	user, err := h.service.UpdateProfile(email, update)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ApplyAsVet handles POST /users/vet (multipart with credential image)
func (h *UserHandler) ApplyAsVet(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)

	var req VetApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error("❌ [UserHandler] Invalid vet application", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and hospital name required"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		h.logger.Error("❌ [UserHandler] Credential image not provided", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credential image required"})
		return
	}

	path, err := saveUploadedImage(c, h.cfg, header)
	if err != nil {
		h.logger.Error("❌ [UserHandler] Image upload failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vet, err := h.service.ApplyAsVet(email, service.VetApplication{
		Name:         req.Name,
		HospitalName: req.HospitalName,
		Description:  req.Description,
		Region:       req.Region,
		ImgPath:      path,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vet": vet})
}

// handleServiceError maps service errors to HTTP responses
func (h *UserHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		h.logger.Error("❌ [UserHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
