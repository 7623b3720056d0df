// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

type AuthTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AuthService
}

func (s *AuthTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	cfg := newTestConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	s.svc = NewAuthService(s.db, cfg)

	user := &models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Role:     models.UserRoleAdmin,
		Status:   models.UserStatusActive,
	}
	require.NoError(s.T(), user.SetPassword("Sup3rSecret!"))
	require.NoError(s.T(), s.db.Create(user).Error)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func (s *AuthTestSuite) TestLoginSuccess() {
	resp, err := s.svc.Login(&LoginRequest{Username: "admin", Password: "Sup3rSecret!"})
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), resp.AccessToken)
	assert.NotEmpty(s.T(), resp.RefreshToken)
	assert.NotNil(s.T(), resp.User.LastLoginAt)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "admin", claims.Username)
	assert.Equal(s.T(), string(models.UserRoleAdmin), claims.Role)
}

func (s *AuthTestSuite) TestLoginWrongPassword() {
	_, err := s.svc.Login(&LoginRequest{Username: "admin", Password: "WrongPass1!"})
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

func (s *AuthTestSuite) TestLoginUnknownUser() {
	_, err := s.svc.Login(&LoginRequest{Username: "nobody", Password: "Sup3rSecret!"})
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

func (s *AuthTestSuite) TestLoginSuspendedAccount() {
	s.db.Model(&models.User{}).
		Where("username = ?", "admin").
		Update("status", models.UserStatusSuspended)

	_, err := s.svc.Login(&LoginRequest{Username: "admin", Password: "Sup3rSecret!"})
	assert.ErrorIs(s.T(), err, ErrAccountSuspended)
}

func (s *AuthTestSuite) TestRefreshTokenRoundTrip() {
	resp, err := s.svc.Login(&LoginRequest{Username: "admin", Password: "Sup3rSecret!"})
	require.NoError(s.T(), err)

	refreshed, err := s.svc.RefreshToken(resp.RefreshToken)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), refreshed.AccessToken)
	assert.Equal(s.T(), resp.User.ID, refreshed.User.ID)
}

func (s *AuthTestSuite) TestChangePassword() {
	resp, err := s.svc.Login(&LoginRequest{Username: "admin", Password: "Sup3rSecret!"})
	require.NoError(s.T(), err)

	err = s.svc.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "Sup3rSecret!",
		NewPassword:     "N3wSecret!pass",
	})
	require.NoError(s.T(), err)

	_, err = s.svc.Login(&LoginRequest{Username: "admin", Password: "Sup3rSecret!"})
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)

	_, err = s.svc.Login(&LoginRequest{Username: "admin", Password: "N3wSecret!pass"})
	assert.NoError(s.T(), err)
}

func (s *AuthTestSuite) TestChangePasswordRejectsWeakPassword() {
	resp, err := s.svc.Login(&LoginRequest{Username: "admin", Password: "Sup3rSecret!"})
	require.NoError(s.T(), err)

	err = s.svc.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "Sup3rSecret!",
		NewPassword:     "alllowercase",
	})
	assert.Error(s.T(), err)
}
