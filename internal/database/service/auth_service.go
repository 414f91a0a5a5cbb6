package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/petmily-app/backend-go/internal/config"
	"github.com/petmily-app/backend-go/internal/database/models"
	"github.com/petmily-app/backend-go/internal/database/repository"
	"github.com/petmily-app/backend-go/internal/mail"
)

// bcryptCost matches the hashing cost the platform has always used.
const bcryptCost = 10

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// AuthService defines the interface for authentication business logic
type AuthService interface {
	// RequestVerificationCode returns (nil, nil) when the email is already
	// registered: no code is stored and no mail is sent, so signup mail
	// cannot be used to spam existing accounts.
	RequestVerificationCode(email string) (*models.VerificationCode, error)
	VerifyEmail(email, code string) error
	Register(email, password, nickname string) (*models.User, error)
	Login(email, password string) (*models.User, *TokenPair, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	Logout(refreshToken string) error
	ValidateAccessToken(tokenString string) (*Principal, error)
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Principal is the identity resolved from an access token.
type Principal struct {
	Email string
	Role  models.Role
}

type authService struct {
	userRepo         repository.UserRepository
	codeRepo         repository.VerificationCodeRepository
	refreshTokenRepo repository.RefreshTokenRepository
	mailProvider     mail.Provider
	jwtSecret        string
	cfg              *config.Config
	logger           *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationCodeRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	mailProvider mail.Provider,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		codeRepo:         codeRepo,
		refreshTokenRepo: refreshTokenRepo,
		mailProvider:     mailProvider,
		jwtSecret:        cfg.JWTSecret,
		cfg:              cfg,
		logger:           logger,
	}
}

func (s *authService) RequestVerificationCode(email string) (*models.VerificationCode, error) {
	s.logger.Info("📨 [AuthService] Verification code requested", "email", email)

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered, skipping code", "email", email)
		return nil, nil
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	verification := &models.VerificationCode{
		Email: email,
		Code:  code,
	}
	if err := s.codeRepo.Create(verification); err != nil {
		s.logger.Error("❌ [AuthService] Failed to store verification code", "error", err)
		return nil, err
	}

	if err := s.mailProvider.SendVerificationCode(email, code); err != nil {
		s.logger.Error("❌ [AuthService] Failed to send verification email", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] Verification code sent", "email", email)
	return verification, nil
}

func (s *authService) VerifyEmail(email, code string) error {
	latest, err := s.codeRepo.FindLatestByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return ErrInvalidVerificationCode
		}
		return err
	}

	// Only the newest code counts; older ones were superseded.
	if latest.Code != code {
		s.logger.Warn("⚠️ [AuthService] Verification code mismatch", "email", email)
		return ErrInvalidVerificationCode
	}

	// Cleanup removes every outstanding code for the address, not just the
	// matched one.
	if err := s.codeRepo.DeleteAllByEmail(email); err != nil {
		s.logger.Error("❌ [AuthService] Failed to delete verification codes", "error", err)
		return err
	}

	s.logger.Info("✅ [AuthService] Email verified", "email", email)
	return nil
}

func (s *authService) Register(email, password, nickname string) (*models.User, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", email)

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Nickname: nickname,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		// A concurrent registration can slip past the existence check;
		// the unique constraint is the source of truth.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "email", user.Email)
	return user, nil
}

func (s *authService) Login(email, password string) (*models.User, *TokenPair, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, nil, ErrEmailNotRegistered
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate tokens", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "email", user.Email)
	return user, tokens, nil
}

func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	s.logger.Info("🔄 [AuthService] Token refresh attempt")

	storedToken, err := s.refreshTokenRepo.FindByToken(refreshToken)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid refresh token", "error", err)
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(storedToken.UserEmail)
	if err != nil {
		return nil, ErrInvalidToken
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate new tokens", "error", err)
		return nil, err
	}

	// Revoke old refresh token (token rotation)
	if err := s.refreshTokenRepo.RevokeToken(refreshToken); err != nil {
		s.logger.Error("❌ [AuthService] Failed to revoke old token", "error", err)
	}

	s.logger.Info("✅ [AuthService] Token refreshed successfully", "email", user.Email)
	return tokens, nil
}

func (s *authService) Logout(refreshToken string) error {
	s.logger.Info("👋 [AuthService] Logout attempt")

	if err := s.refreshTokenRepo.RevokeToken(refreshToken); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.logger.Warn("⚠️ [AuthService] Token not found for logout")
			return repository.ErrTokenNotFound
		}
		return err
	}

	s.logger.Info("✅ [AuthService] User logged out successfully")
	return nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Principal{Email: email, Role: models.Role(role)}, nil
}

// generateTokenPair creates both access and refresh tokens
func (s *authService) generateTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateAndStoreRefreshToken(user.Email)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.AccessTokenExpiration,
	}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"email": user.Email,
		"role":  string(user.Role),
		"type":  "access",
		"exp":   time.Now().Add(time.Duration(s.cfg.AccessTokenExpiration) * time.Second).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateAndStoreRefreshToken(userEmail string) (string, error) {
	// Generate cryptographically secure random token
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	tokenString := base64.URLEncoding.EncodeToString(tokenBytes)

	refreshToken := &models.RefreshToken{
		UserEmail: userEmail,
		Token:     tokenString,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.RefreshTokenExpiration) * time.Second),
		IsRevoked: false,
	}

	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", err
	}

	return tokenString, nil
}

// generateVerificationCode produces a 6-digit numeric code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Service errors
var (
	ErrEmailAlreadyExists      = errors.New("email already registered")
	ErrEmailNotRegistered      = errors.New("email is not registered")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrInvalidToken            = errors.New("invalid or expired token")
)
