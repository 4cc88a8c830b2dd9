package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error)
	List(ctx context.Context, roles []domain.Role, limit, offset int) ([]domain.User, error)
	Count(ctx context.Context, roles []domain.Role) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
