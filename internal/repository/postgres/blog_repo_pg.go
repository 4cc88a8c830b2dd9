package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

const blogSelect = `
        SELECT b.id, b.title, b.content, b.author_id, u.name AS author_name, b.content_type, b.created_at, b.updated_at
`

type BlogRepository struct {
	db *sqlx.DB
}

func NewBlogRepo(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, authorID uuid.UUID, title, content string, contentType domain.BlogContentType) (*domain.Blog, error) {
	const query = `
        WITH b AS (
            INSERT INTO blogs (title, content, author_id, content_type)
            VALUES ($1, $2, $3, $4)
            RETURNING *
        )` + blogSelect + `
        FROM b
        LEFT JOIN users u ON u.id = b.author_id
    `
	var blog domain.Blog
	if err := r.db.GetContext(ctx, &blog, query, title, content, authorID, contentType); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id int64) (*domain.Blog, error) {
	const query = blogSelect + `
        FROM blogs b
        LEFT JOIN users u ON u.id = b.author_id
        WHERE b.id = $1
    `
	var blog domain.Blog
	if err := r.db.GetContext(ctx, &blog, query, id); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepository) Update(ctx context.Context, id int64, title, content string, contentType domain.BlogContentType) (*domain.Blog, error) {
	const query = `
        WITH b AS (
            UPDATE blogs
            SET title = $2,
                content = $3,
                content_type = $4,
                updated_at = NOW()
            WHERE id = $1
            RETURNING *
        )` + blogSelect + `
        FROM b
        LEFT JOIN users u ON u.id = b.author_id
    `
	var blog domain.Blog
	if err := r.db.GetContext(ctx, &blog, query, id, title, content, contentType); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM blogs WHERE id = $1`
	return execOne(ctx, r.db, query, id)
}

var _ ports.BlogRepository = (*BlogRepository)(nil)
