package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alloylab/apperrors"
	"github.com/alloylab/config"
	"github.com/alloylab/dto"
	"github.com/alloylab/models"
	"github.com/alloylab/testhelpers"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	cfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 30 * time.Minute}
	return NewAuthService(db, cfg, zap.NewNop()), db
}

func seedLogin(t *testing.T, db *gorm.DB, name, password string, active bool) models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	user := models.User{Name: name, PasswordHash: hash, IsOperator: true, IsActive: active}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestAuthService_Login(t *testing.T) {
	svc, db := newAuthService(t)
	user := seedLogin(t, db, "petrov", "secret1", true)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Name: "petrov", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), resp.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "petrov", claims.Name)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthService_LoginRejected(t *testing.T) {
	svc, db := newAuthService(t)
	seedLogin(t, db, "petrov", "secret1", true)
	seedLogin(t, db, "retired", "secret1", false)

	tests := []struct {
		name     string
		req      dto.LoginRequest
		expected error
	}{
		{"wrong password", dto.LoginRequest{Name: "petrov", Password: "nope"}, apperrors.ErrUnauthorized},
		{"unknown user", dto.LoginRequest{Name: "ghost", Password: "secret1"}, apperrors.ErrUnauthorized},
		{"inactive user", dto.LoginRequest{Name: "retired", Password: "secret1"}, apperrors.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, db := newAuthService(t)
	user := seedLogin(t, db, "petrov", "secret1", true)
	ctx := context.Background()

	token, _, err := svc.GenerateToken(user)
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)
	_, err = svc.Authenticate(ctx, token)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestAuthService_ExpiredToken(t *testing.T) {
	svc, db := newAuthService(t)
	user := seedLogin(t, db, "petrov", "secret1", true)

	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := svc.GenerateToken(user)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestAuthService_ForeignSignature(t *testing.T) {
	svc, db := newAuthService(t)
	user := seedLogin(t, db, "petrov", "secret1", true)

	other := NewAuthService(db, config.AuthConfig{JWTSecret: "other", TokenTTL: time.Minute}, zap.NewNop())
	token, _, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}
