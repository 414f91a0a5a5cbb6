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
	"github.com/petmily-app/backend-go/internal/middleware"
)

// PostHandler handles HTTP requests for the community board
type PostHandler struct {
	service service.PostService
	logger  *slog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(service service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		logger:  logger,
	}
}

type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Body     string `json:"body" binding:"required,min=1,max=1000"`
	Category string `json:"category" binding:"required,oneof=free info"`
}

type UpdatePostRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
	Body  string `json:"body" binding:"required,min=1,max=1000"`
}

type ReportPostRequest struct {
	PostID uint   `json:"post_id" binding:"required"`
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=1000"`
}

type ReportCommentRequest struct {
	CommentID uint   `json:"comment_id" binding:"required"`
	Reason    string `json:"reason" binding:"required,min=1,max=255"`
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [PostHandler] Invalid post", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, body and category (free|info) required"})
		return
	}

	post, err := h.service.Create(email, req.Title, req.Body, models.PostCategory(req.Category))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// List handles GET /posts?category=free&page=1
func (h *PostHandler) List(c *gin.Context) {
	category := c.Query("category")
	if category != "" && category != string(models.CategoryFree) && category != string(models.CategoryInfo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.service.ListByCategory(models.PostCategory(category), page)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /posts/:postId
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.service.GetByID(postID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Update handles PUT /posts/:postId
func (h *PostHandler) Update(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [PostHandler] Invalid post update", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and body required"})
		return
	}

	if err := h.service.Update(postID, email, req.Title, req.Body); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

// Delete handles DELETE /posts/:postId
func (h *PostHandler) Delete(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(postID, email); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// Report handles POST /posts/report
func (h *PostHandler) Report(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)

	var req ReportPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [PostHandler] Invalid report", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post id and reason required"})
		return
	}

	link, err := h.service.Report(req.PostID, req.Reason, email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report_post": link})
}

// CreateComment handles POST /posts/:postId/comments
func (h *PostHandler) CreateComment(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [PostHandler] Invalid comment", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body required"})
		return
	}

	comment, err := h.service.CreateComment(postID, email, req.Body)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListComments handles GET /posts/:postId/comments
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	comments, err := h.service.ListComments(postID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// ReportComment handles POST /comments/report
func (h *PostHandler) ReportComment(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)

	var req ReportCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [PostHandler] Invalid comment report", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment id and reason required"})
		return
	}

	link, err := h.service.ReportComment(req.CommentID, req.Reason, email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report_comment": link})
}

func parsePostID(c *gin.Context) (uint, bool) {
	idStr := c.Param("postId")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps service errors to HTTP responses
func (h *PostHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, repository.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	case errors.Is(err, service.ErrSelfReport):
		c.JSON(http.StatusConflict, gin.H{"error": "You cannot report your own content"})
	default:
		h.logger.Error("❌ [PostHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
