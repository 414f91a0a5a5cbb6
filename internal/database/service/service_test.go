package service_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/petmily-app/backend-go/internal/config"
	"github.com/petmily-app/backend-go/internal/database/models"
)

// setupTestDB creates a new in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:              "test-secret",
		AccessTokenExpiration:  900,
		RefreshTokenExpiration: 86400,
	}
}

// mailSpy records sent verification codes instead of delivering them.
type mailSpy struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To   string
	Code string
}

func (m *mailSpy) SendVerificationCode(to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Code: code})
	return nil
}

func (m *mailSpy) Close() error { return nil }

func (m *mailSpy) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mailSpy) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}
