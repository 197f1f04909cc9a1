package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/almondloverr/CRM/internal/repository"
)

type tokenIssuer interface {
	GenerateToken(userID uint, username string, isStaff bool) (string, error)
}

type Service struct {
	users UserRepository
	jwt   tokenIssuer
}

func NewService(users UserRepository, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

// Login checks the credentials and issues a token. An unknown username
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, user.IsStaff)
	if err != nil {
		return nil, err
	}

	redirect := "/active/"
	if user.IsStaff {
		redirect = "/main/"
	}

	return &LoginResponse{
		Token:    token,
		Redirect: redirect,
		Username: user.Username,
		IsStaff:  user.IsStaff,
	}, nil
}
