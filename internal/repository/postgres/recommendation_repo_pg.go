package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

const recommendationColumns = `id, name, position, company, recommendation, approved, created_at, updated_at`

type RecommendationRepository struct {
	db *sqlx.DB
}

func NewRecommendationRepo(db *sqlx.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

func (r *RecommendationRepository) List(ctx context.Context, approved *bool, limit, offset int) ([]domain.Recommendation, error) {
	const query = `
        SELECT ` + recommendationColumns + `
        FROM recommendations
        WHERE ($1::boolean IS NULL OR approved = $1)
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	items := []domain.Recommendation{}
	if err := r.db.SelectContext(ctx, &items, query, approved, limit, offset); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RecommendationRepository) Count(ctx context.Context, approved *bool) (int, error) {
	const query = `
        SELECT COUNT(*)
        FROM recommendations
        WHERE ($1::boolean IS NULL OR approved = $1)
    `
	var total int
	if err := r.db.GetContext(ctx, &total, query, approved); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *RecommendationRepository) Update(ctx context.Context, id int64, edit domain.RecommendationEdit) (*domain.Recommendation, error) {
	const query = `
        UPDATE recommendations
        SET name = $2,
            position = $3,
            company = $4,
            recommendation = $5,
            approved = COALESCE($6::boolean, approved),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + recommendationColumns

	var item domain.Recommendation
	if err := r.db.GetContext(ctx, &item, query, id, edit.Name, edit.Position, edit.Company, edit.Recommendation, edit.Approved); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *RecommendationRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM recommendations WHERE id = $1`
	return execOne(ctx, r.db, query, id)
}

var _ ports.RecommendationRepository = (*RecommendationRepository)(nil)
