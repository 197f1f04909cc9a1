package auth

import (
	"context"

	"github.com/almondloverr/CRM/internal/domain"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
