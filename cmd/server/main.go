package main

import (
	"fmt"
	"os"

	"github.com/petmily-app/backend-go/internal/api"
	"github.com/petmily-app/backend-go/internal/config"
	"github.com/petmily-app/backend-go/internal/database"
	"github.com/petmily-app/backend-go/internal/database/repository"
	"github.com/petmily-app/backend-go/internal/database/service"
	"github.com/petmily-app/backend-go/internal/handler"
	"github.com/petmily-app/backend-go/internal/logger"
	"github.com/petmily-app/backend-go/internal/mail"
	"github.com/petmily-app/backend-go/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Petmily] Starting backend...",
		"environment", cfg.AppEnv,
		"port", cfg.HTTPPort,
	)

	// 3. Connect to Database
	db, err := database.Connect(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	vetRepo := repository.NewVetRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// 5. Mail provider (log-only when no SMTP host is configured)
	var mailProvider mail.Provider
	if cfg.SMTPHost != "" {
		smtpProvider, err := mail.NewSMTPProvider(cfg)
		if err != nil {
			appLogger.Error("❌ Failed to configure SMTP", "error", err)
			os.Exit(1)
		}
		mailProvider = smtpProvider
	} else {
		mailProvider = mail.NewLogProvider(appLogger)
	}
	defer mailProvider.Close()

	// 6. Verification rate limiter (Redis, no-op fallback)
	verificationLimiter, err := middleware.NewVerificationLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op verification limiter", "error", err)
		verificationLimiter = middleware.NewNoOpVerificationLimiter(appLogger)
	}
	defer verificationLimiter.Close()

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, codeRepo, refreshTokenRepo, mailProvider, cfg, appLogger)
	userService := service.NewUserService(userRepo, vetRepo, appLogger)
	postService := service.NewPostService(postRepo, commentRepo, reportRepo, appLogger)
	adminService := service.NewAdminService(db, userRepo, vetRepo, reportRepo, appLogger)

	// 8. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, verificationLimiter, appLogger)
	userHandler := handler.NewUserHandler(userService, cfg, appLogger)
	postHandler := handler.NewPostHandler(postService, appLogger)
	adminHandler := handler.NewAdminHandler(adminService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 9. Uploads directory
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		appLogger.Error("❌ Failed to create upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	r := api.SetupRouter(authHandler, userHandler, postHandler, adminHandler, authMiddleware)

	// 10. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.HTTPPort)
	appLogger.Info("🌍 [Petmily] HTTP Server running...", "addr", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
