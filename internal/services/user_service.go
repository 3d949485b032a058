package services

import (
	"errors"
	"fmt"

	"apteekki/internal/apperror"
	"apteekki/internal/models"
	"apteekki/internal/repositories"
)

// UserService manages user records and enforces username uniqueness.
type UserService struct {
	userRepo      repositories.UserRepository
	creds         *CredentialStore
	adminUsername string
}

// NewUserService creates a new UserService. adminUsername names the
// bootstrap administrative account: a registration with exactly that
// username receives the admin role, every other account is standard.
func NewUserService(userRepo repositories.UserRepository, creds *CredentialStore, adminUsername string) *UserService {
	return &UserService{
		userRepo:      userRepo,
		creds:         creds,
		adminUsername: adminUsername,
	}
}

// Register hashes the password and inserts a new user. A duplicate
// username fails as a validation error without partial mutation.
func (s *UserService) Register(username, name, password string) (*models.User, error) {
	if username == "" || name == "" || password == "" {
		return nil, apperror.NewValidation("username, name and password are required", nil)
	}

	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, apperror.NewValidation(fmt.Sprintf("username %q is already taken", username), nil)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewInternal("failed to check username", err)
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return nil, err
	}

	role := models.RoleStandard
	if username == s.adminUsername {
		role = models.RoleAdmin
	}

	user := &models.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Raced with a concurrent insert; the unique index held.
			return nil, apperror.NewValidation(fmt.Sprintf("username %q is already taken", username), err)
		}
		return nil, apperror.NewInternal("failed to create user", err)
	}
	return user, nil
}

// GetByID resolves a user by id.
func (s *UserService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFound("user not found", err)
		}
		return nil, apperror.NewInternal("failed to get user", err)
	}
	return user, nil
}

// GetByUsername resolves a user by username (case-sensitive).
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFound("user not found", err)
		}
		return nil, apperror.NewInternal("failed to get user", err)
	}
	return user, nil
}
