package auth

import (
	"context"

	"github.com/google/uuid"

	"tradebridge/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}

type jwtService interface {
	GenerateToken(userID uuid.UUID, role string) (string, error)
}
