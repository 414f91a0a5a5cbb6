package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/petmily-app/backend-go/internal/database/models"
	"github.com/petmily-app/backend-go/internal/database/repository"
	"github.com/petmily-app/backend-go/internal/database/service"
)

func newAuthService(t *testing.T) (service.AuthService, *gorm.DB, *mailSpy) {
	db := setupTestDB(t)
	spy := &mailSpy{}
	svc := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewVerificationCodeRepository(db),
		repository.NewRefreshTokenRepository(db),
		spy,
		testConfig(),
		testLogger(),
	)
	return svc, db, spy
}

func registerUser(t *testing.T, svc service.AuthService, email string) *models.User {
	t.Helper()
	user, err := svc.Register(email, "password123", "nickname")
	require.NoError(t, err)
	return user
}

func TestAuthService_RequestVerificationCode(t *testing.T) {
	svc, db, spy := newAuthService(t)

	code, err := svc.RequestVerificationCode("new@example.com")
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Len(t, code.Code, 6)
	assert.Equal(t, 1, spy.count())
	assert.Equal(t, "new@example.com", spy.last().To)
	assert.Equal(t, code.Code, spy.last().Code)

	var stored int64
	require.NoError(t, db.Model(&models.VerificationCode{}).Count(&stored).Error)
	assert.EqualValues(t, 1, stored)
}

func TestAuthService_RequestVerificationCode_AlreadyRegistered(t *testing.T) {
	svc, db, spy := newAuthService(t)

	registerUser(t, svc, "taken@example.com")

	// No error, no code, no mail: the endpoint stays silent about
	// existing accounts.
	code, err := svc.RequestVerificationCode("taken@example.com")
	require.NoError(t, err)
	assert.Nil(t, code)
	assert.Equal(t, 0, spy.count())

	var stored int64
	require.NoError(t, db.Model(&models.VerificationCode{}).Count(&stored).Error)
	assert.EqualValues(t, 0, stored)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	svc, db, _ := newAuthService(t)

	first, err := svc.RequestVerificationCode("new@example.com")
	require.NoError(t, err)
	second, err := svc.RequestVerificationCode("new@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "", second.Code)

	// Only the latest code is accepted
	if first.Code != second.Code {
		err = svc.VerifyEmail("new@example.com", first.Code)
		assert.ErrorIs(t, err, service.ErrInvalidVerificationCode)
	}

	require.NoError(t, svc.VerifyEmail("new@example.com", second.Code))

	// Successful verification clears every outstanding code
	var remaining int64
	require.NoError(t, db.Model(&models.VerificationCode{}).
		Where("email = ?", "new@example.com").
		Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining)

	err = svc.VerifyEmail("new@example.com", second.Code)
	assert.ErrorIs(t, err, service.ErrInvalidVerificationCode)
}

func TestAuthService_VerifyEmail_NoCodeRequested(t *testing.T) {
	svc, _, _ := newAuthService(t)

	err := svc.VerifyEmail("nobody@example.com", "123456")
	assert.ErrorIs(t, err, service.ErrInvalidVerificationCode)
}

func TestAuthService_Register(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user := registerUser(t, svc, "mina@example.com")
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")

	_, err := svc.Register("mina@example.com", "otherpass", "other")
	assert.ErrorIs(t, err, service.ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerUser(t, svc, "mina@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success", "mina@example.com", "password123", nil},
		{"wrong password", "mina@example.com", "wrongpass", service.ErrInvalidCredentials},
		{"unknown email", "ghost@example.com", "password123", service.ErrEmailNotRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := svc.Login(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tokens)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, tokens)
			assert.Equal(t, tt.email, user.Email)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
		})
	}
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerUser(t, svc, "mina@example.com")

	_, tokens, err := svc.Login("mina@example.com", "password123")
	require.NoError(t, err)

	principal, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "mina@example.com", principal.Email)
	assert.Equal(t, models.RoleUser, principal.Role)

	_, err = svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_RefreshToken_Rotation(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerUser(t, svc, "mina@example.com")

	_, tokens, err := svc.Login("mina@example.com", "password123")
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The old refresh token was revoked by the rotation
	_, err = svc.RefreshToken(tokens.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	// The rotated one still works
	_, err = svc.RefreshToken(rotated.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerUser(t, svc, "mina@example.com")

	_, tokens, err := svc.Login("mina@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(tokens.RefreshToken))

	_, err = svc.RefreshToken(tokens.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	err = svc.Logout(tokens.RefreshToken)
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
}
