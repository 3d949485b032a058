package services

import (
	"apteekki/internal/apperror"
	"apteekki/internal/models"
	"apteekki/internal/repositories"
)

// AuthService handles the login flow: credential check and token issuance.
type AuthService struct {
	userRepo repositories.UserRepository
	creds    *CredentialStore
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, creds *CredentialStore, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		creds:    creds,
		tokens:   tokens,
	}
}

// Login authenticates a user and returns a signed token on success. Every
// failure mode yields the same message so callers cannot probe which
// usernames exist.
func (s *AuthService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, apperror.NewUnauthorized("invalid username or password", err)
	}

	ok, err := s.creds.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return "", nil, apperror.NewUnauthorized("invalid username or password", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
