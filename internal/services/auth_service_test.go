package services_test

import (
	"log"
	"os"
	"testing"

	"apteekki/internal/apperror"
	"apteekki/internal/models"
	"apteekki/internal/repositories"
	"apteekki/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to set up the test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	creds := services.NewCredentialStore(0)
	tokens := services.NewTokenService("test_jwt_secret", 0)
	authService := services.NewAuthService(mockRepo, creds, tokens)

	hash, err := creds.Hash("password123")
	assert.NoError(t, err)
	user := &models.User{
		ID:           "user-123",
		Username:     "testuser",
		Name:         "Test User",
		PasswordHash: hash,
		Role:         models.RoleStandard,
	}

	// Successful login
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	token, loggedIn, err := authService.Login("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.Username, loggedIn.Username)
	mockRepo.AssertExpectations(t)

	// The issued token carries the user's identity
	claims, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)

	// Wrong password
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, _, err = authService.Login("testuser", "wrongpassword")
	assertKind(t, err, apperror.Unauthorized)
	assert.Contains(t, err.Error(), "invalid username or password")
	mockRepo.AssertExpectations(t)

	// Unknown user gets the same generic message
	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, repositories.ErrNotFound).Once()
	_, _, err = authService.Login("nonexistentuser", "password123")
	assertKind(t, err, apperror.Unauthorized)
	assert.Contains(t, err.Error(), "invalid username or password")
	mockRepo.AssertExpectations(t)
}
