package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

const contactColumns = `id, name, email, subject, message, role, created_at, updated_at`

type ContactRepository struct {
	db *sqlx.DB
}

func NewContactRepo(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]domain.ContactSubmission, error) {
	const query = `
        SELECT ` + contactColumns + `
        FROM contact_submissions
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2
    `
	items := []domain.ContactSubmission{}
	if err := r.db.SelectContext(ctx, &items, query, limit, offset); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ContactRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contact_submissions`); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ContactRepository) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.ContactSubmission, error) {
	const query = `
        UPDATE contact_submissions
        SET role = $2,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + contactColumns

	var item domain.ContactSubmission
	if err := r.db.GetContext(ctx, &item, query, id, role); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM contact_submissions WHERE id = $1`
	return execOne(ctx, r.db, query, id)
}

var _ ports.ContactRepository = (*ContactRepository)(nil)
