package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petmily-app/backend-go/internal/database/models"
	"github.com/petmily-app/backend-go/internal/database/repository"
	"github.com/petmily-app/backend-go/internal/database/service"
)

// defaultAdminPageSize is the page size of admin listings unless the
// console asks for another.
const defaultAdminPageSize = 10

// AdminHandler handles the admin console API
type AdminHandler struct {
	service service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

type ReviewVetRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Status string `json:"status" binding:"required,oneof=pending accepted rejected"`
}

type ModerateUserRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Blocked string `json:"blocked" binding:"omitempty,oneof=true false permanent"`
	Deleted string `json:"deleted" binding:"omitempty,oneof=true"`
}

// ListVetRequests handles GET /admins/vet-requests?status=pending
func (h *AdminHandler) ListVetRequests(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !isValidVetStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown vet request status"})
		return
	}

	vets, err := h.service.ListVetRequests(models.VetStatus(status))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vet_requests": vets})
}

// ReviewVetRequest handles PUT /admins/vet-requests/status
func (h *AdminHandler) ReviewVetRequest(c *gin.Context) {
	var req ReviewVetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [AdminHandler] Invalid vet review", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vet request id and status (pending|accepted|rejected) required"})
		return
	}

	vet, err := h.service.ReviewVetRequest(req.ID, models.VetStatus(req.Status))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vet_request": vet})
}

// ListUsers handles GET /admins/users with role/blocked/deleted/search
// filters plus page and perPage. Returns users and the matching total.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filter := repository.UserFilter{
		Role:    c.Query("role"),
		Blocked: c.Query("blocked"),
		Deleted: c.Query("deleted"),
		Search:  c.Query("search"),
		OrderBy: c.Query("orderBy"),
	}

	page, perPage := parsePagination(c)

	users, err := h.service.ListUsers(filter, page, perPage)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	total, err := h.service.CountUsers(filter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       total,
		"currentPage": page,
		"perPage":     perPage,
		"users":       users,
	})
}

// ModerateUser handles PUT /admins/users/status
func (h *AdminHandler) ModerateUser(c *gin.Context) {
	var req ModerateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [AdminHandler] Invalid moderation request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email plus blocked (true|false|permanent) or deleted (true) required"})
		return
	}

	err := h.service.ModerateUser(req.Email, service.ModerationAction{
		Blocked: req.Blocked,
		Deleted: req.Deleted,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User moderated"})
}

// ListReportedPosts handles GET /admins/posts?status=completed&page=1
func (h *AdminHandler) ListReportedPosts(c *gin.Context) {
	status := c.Query("status")
	if !isValidReportFilter(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report status"})
		return
	}

	page, perPage := parsePagination(c)

	result, err := h.service.ListReportedPosts(status, page, perPage)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListReportedComments handles GET /admins/comments?status=pending&page=1
func (h *AdminHandler) ListReportedComments(c *gin.Context) {
	status := c.Query("status")
	if !isValidReportFilter(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report status"})
		return
	}

	page, perPage := parsePagination(c)

	result, err := h.service.ListReportedComments(status, page, perPage)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("perPage", strconv.Itoa(defaultAdminPageSize)))
	if perPage < 1 || perPage > 100 {
		perPage = defaultAdminPageSize
	}
	return page, perPage
}

func isValidVetStatus(status string) bool {
	switch models.VetStatus(status) {
	case models.VetStatusPending, models.VetStatusAccepted, models.VetStatusRejected:
		return true
	}
	return false
}

func isValidReportFilter(status string) bool {
	switch status {
	case "", repository.StatusCompleted,
		string(models.ReportStatusPending),
		string(models.ReportStatusAccepted),
		string(models.ReportStatusRejected):
		return true
	}
	return false
}

// handleServiceError maps service errors to HTTP responses
func (h *AdminHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrVetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Vet request not found"})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, service.ErrInvalidModerationAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid moderation action"})
	default:
		h.logger.Error("❌ [AdminHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
