// Package auth authenticates admin users against stored credentials.
package auth

import (
	"context"
	"errors"

	"hairven/internal/models"
	"hairven/internal/repositories"
	"hairven/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	users repositories.UserRepository
}

func NewService(users repositories.UserRepository) *Service {
	return &Service{users: users}
}

// Login verifies the credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(&models.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
}
