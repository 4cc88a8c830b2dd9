package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
)

type BlogRepository interface {
	Create(ctx context.Context, authorID uuid.UUID, title, content string, contentType domain.BlogContentType) (*domain.Blog, error)
	FindByID(ctx context.Context, id int64) (*domain.Blog, error)
	Update(ctx context.Context, id int64, title, content string, contentType domain.BlogContentType) (*domain.Blog, error)
	Delete(ctx context.Context, id int64) error
}
