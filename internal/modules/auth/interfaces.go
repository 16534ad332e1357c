package auth

import (
	"context"

	"railbook/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}
