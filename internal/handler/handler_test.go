package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/petmily-app/backend-go/internal/api"
	"github.com/petmily-app/backend-go/internal/config"
	"github.com/petmily-app/backend-go/internal/database/models"
	"github.com/petmily-app/backend-go/internal/database/repository"
	"github.com/petmily-app/backend-go/internal/database/service"
	"github.com/petmily-app/backend-go/internal/handler"
	"github.com/petmily-app/backend-go/internal/mail"
	"github.com/petmily-app/backend-go/internal/middleware"
)

// testEnv is a fully wired API backed by in-memory SQLite.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   service.AuthService
}

func setupTestEnv(t *testing.T, limiter middleware.VerificationLimiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.VerificationCode{},
		&models.RefreshToken{},
		&models.Vet{},
		&models.Post{},
		&models.Comment{},
		&models.Report{},
		&models.ReportPost{},
		&models.ReportComment{},
	)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		JWTSecret:              "test-secret",
		AccessTokenExpiration:  900,
		RefreshTokenExpiration: 86400,
		UploadDir:              t.TempDir(),
		MaxUploadSize:          5 * 1024 * 1024,
	}

	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	vetRepo := repository.NewVetRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	if limiter == nil {
		limiter = middleware.NewNoOpVerificationLimiter(logger)
	}

	authService := service.NewAuthService(userRepo, codeRepo, refreshTokenRepo, mail.NewLogProvider(logger), cfg, logger)
	userService := service.NewUserService(userRepo, vetRepo, logger)
	postService := service.NewPostService(postRepo, commentRepo, reportRepo, logger)
	adminService := service.NewAdminService(db, userRepo, vetRepo, reportRepo, logger)

	router := api.SetupRouter(
		handler.NewAuthHandler(authService, limiter, logger),
		handler.NewUserHandler(userService, cfg, logger),
		handler.NewPostHandler(postService, logger),
		handler.NewAdminHandler(adminService, logger),
		middleware.NewAuthMiddleware(authService, logger),
	)

	return &testEnv{router: router, db: db, auth: authService}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// loginAs registers a user and returns a valid access token.
func (e *testEnv) loginAs(t *testing.T, email string, role models.Role) string {
	t.Helper()

	_, err := e.auth.Register(email, "password123", "nickname")
	require.NoError(t, err)

	if role != models.RoleUser {
		require.NoError(t, e.db.Model(&models.User{}).
			Where("email = ?", email).
			Update("role", role).Error)
	}

	_, tokens, err := e.auth.Login(email, "password123")
	require.NoError(t, err)
	return tokens.AccessToken
}

func TestAuthEndpoints_RegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.request(t, http.MethodPost, "/api/v1/users", "", gin.H{
		"email":    "mina@example.com",
		"password": "password123",
		"nickname": "mina",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate registration conflicts
	w = env.request(t, http.MethodPost, "/api/v1/users", "", gin.H{
		"email":    "mina@example.com",
		"password": "password123",
		"nickname": "mina",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Password shorter than 8 chars fails validation
	w = env.request(t, http.MethodPost, "/api/v1/users", "", gin.H{
		"email":    "short@example.com",
		"password": "short",
		"nickname": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email":    "mina@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	w = env.request(t, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email":    "mina@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthEndpoints_VerificationFlow(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.request(t, http.MethodPost, "/api/v1/users/verification", "", gin.H{
		"email": "new@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var code models.VerificationCode
	require.NoError(t, env.db.Where("email = ?", "new@example.com").First(&code).Error)

	w = env.request(t, http.MethodPost, "/api/v1/users/verify", "", gin.H{
		"email": "new@example.com",
		"code":  "000000",
	})
	// Assume the generated code is never the all-zero string we send
	if code.Code != "000000" {
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w = env.request(t, http.MethodPost, "/api/v1/users/verify", "", gin.H{
		"email": "new@example.com",
		"code":  code.Code,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthEndpoints_VerificationRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := middleware.NewVerificationLimiterWithClient(client, 1, logger)

	env := setupTestEnv(t, limiter)

	w := env.request(t, http.MethodPost, "/api/v1/users/verification", "", gin.H{
		"email": "new@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/users/verification", "", gin.H{
		"email": "new@example.com",
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.request(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := env.loginAs(t, "mina@example.com", models.RoleUser)
	w = env.request(t, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mina@example.com")
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	env := setupTestEnv(t, nil)

	userToken := env.loginAs(t, "user@example.com", models.RoleUser)
	w := env.request(t, http.MethodGet, "/api/v1/admins/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := env.loginAs(t, "admin@example.com", models.RoleAdmin)
	w = env.request(t, http.MethodGet, "/api/v1/admins/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "total")
}

func TestAdminRoutes_ModerateUser(t *testing.T) {
	env := setupTestEnv(t, nil)

	env.loginAs(t, "troll@example.com", models.RoleUser)
	adminToken := env.loginAs(t, "admin@example.com", models.RoleAdmin)

	w := env.request(t, http.MethodPut, "/api/v1/admins/users/status", adminToken, gin.H{
		"email":   "troll@example.com",
		"blocked": "true",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "troll@example.com").First(&user).Error)
	assert.NotNil(t, user.BlockedAt)

	// Unknown moderation verbs fail binding
	w = env.request(t, http.MethodPut, "/api/v1/admins/users/status", adminToken, gin.H{
		"email":   "troll@example.com",
		"blocked": "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPut, "/api/v1/admins/users/status", adminToken, gin.H{
		"email":   "ghost@example.com",
		"blocked": "true",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostEndpoints_CRUDAndReport(t *testing.T) {
	env := setupTestEnv(t, nil)

	authorToken := env.loginAs(t, "author@example.com", models.RoleUser)
	reporterToken := env.loginAs(t, "reporter@example.com", models.RoleUser)

	w := env.request(t, http.MethodPost, "/api/v1/posts", authorToken, gin.H{
		"title":    "My dog",
		"body":     "He is good",
		"category": "free",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Post models.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postID := created.Post.ID
	require.NotZero(t, postID)

	// Reads are public
	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", postID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/posts?category=free", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/posts?category=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Writes need a token
	w = env.request(t, http.MethodPost, "/api/v1/posts", "", gin.H{
		"title": "x", "body": "y", "category": "free",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Someone else's update is a 404
	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", postID), reporterToken, gin.H{
		"title": "hijacked", "body": "y",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Self-report conflicts
	w = env.request(t, http.MethodPost, "/api/v1/posts/report", authorToken, gin.H{
		"post_id": postID,
		"reason":  "test",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/posts/report", reporterToken, gin.H{
		"post_id": postID,
		"reason":  "spam",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", postID), reporterToken, gin.H{
		"body": "nice dog",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/comments", postID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nice dog")

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", postID), authorToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", postID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutes_VetReview(t *testing.T) {
	env := setupTestEnv(t, nil)

	env.loginAs(t, "applicant@example.com", models.RoleUser)
	adminToken := env.loginAs(t, "admin@example.com", models.RoleAdmin)

	vet := &models.Vet{
		UserEmail:    "applicant@example.com",
		Name:         "Dr Kim",
		HospitalName: "Happy Paws",
		Status:       models.VetStatusPending,
	}
	require.NoError(t, env.db.Create(vet).Error)

	w := env.request(t, http.MethodGet, "/api/v1/admins/vet-requests?status=pending", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Happy Paws")

	w = env.request(t, http.MethodPut, "/api/v1/admins/vet-requests/status", adminToken, gin.H{
		"id":     vet.ID,
		"status": "accepted",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "applicant@example.com").First(&user).Error)
	assert.Equal(t, models.RoleVet, user.Role)
}
