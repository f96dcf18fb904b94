package database

import (
	"fmt"
	"strings"

	"restaupilot/internal/models"
)

// GetUserByEmail loads a user for login.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

// CreateUser inserts a user. Email is stored lower-cased.
func (s *Store) CreateUser(u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" || u.PasswordHash == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalid)
	}
	var count int
	if err := s.db.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: user %s exists", ErrConflict, u.Email)
	}
	u.ID = 0
	if err := s.db.Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
