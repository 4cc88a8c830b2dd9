package ports

import (
	"context"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
)

// RecommendationRepository filters on approval when approved is non-nil.
type RecommendationRepository interface {
	List(ctx context.Context, approved *bool, limit, offset int) ([]domain.Recommendation, error)
	Count(ctx context.Context, approved *bool) (int, error)
	Update(ctx context.Context, id int64, edit domain.RecommendationEdit) (*domain.Recommendation, error)
	Delete(ctx context.Context, id int64) error
}

type ContactRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.ContactSubmission, error)
	Count(ctx context.Context) (int, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.ContactSubmission, error)
	Delete(ctx context.Context, id int64) error
}
