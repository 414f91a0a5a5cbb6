package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/petmily-app/backend-go/internal/database/models"
)

func TestUser_IsBlocked(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	future := now.Add(14 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name      string
		blockedAt *time.Time
		want      bool
	}{
		{"never blocked", nil, false},
		{"block still active", &future, true},
		{"block expired", &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{Email: "mina@example.com", BlockedAt: tt.blockedAt}
			assert.Equal(t, tt.want, user.IsBlocked(now))
		})
	}
}
