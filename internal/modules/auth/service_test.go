package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/almondloverr/CRM/internal/domain"
	"github.com/almondloverr/CRM/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) GenerateToken(userID uint, username string, isStaff bool) (string, error) {
	return "token-for-" + username, nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginStaffRedirectsToMain(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "mpetrov").Return(&domain.User{
		ID: 7, Username: "mpetrov", PasswordHash: hashOf(t, "secret"), IsStaff: true,
	}, nil)

	svc := NewService(users, stubIssuer{})
	res, err := svc.Login(context.Background(), LoginRequest{Username: "mpetrov", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "token-for-mpetrov", res.Token)
	assert.Equal(t, "/main/", res.Redirect)
	assert.True(t, res.IsStaff)
	users.AssertExpectations(t)
}

func TestLoginWorkerRedirectsToActive(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "skuznetsov").Return(&domain.User{
		ID: 8, Username: "skuznetsov", PasswordHash: hashOf(t, "secret"), IsStaff: false,
	}, nil)

	svc := NewService(users, stubIssuer{})
	res, err := svc.Login(context.Background(), LoginRequest{Username: "skuznetsov", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "/active/", res.Redirect)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "mpetrov").Return(&domain.User{
		ID: 7, Username: "mpetrov", PasswordHash: hashOf(t, "secret"),
	}, nil)

	svc := NewService(users, stubIssuer{})
	_, err := svc.Login(context.Background(), LoginRequest{Username: "mpetrov", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	svc := NewService(users, stubIssuer{})
	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "x"})

	// unknown user and wrong password look the same to the caller
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
