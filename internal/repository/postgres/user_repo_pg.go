package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error) {
	const query = `
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, name, email, passwordHash, role)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users
        WHERE LOWER(email) = LOWER($1)
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
        UPDATE users
        SET password_hash = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	return execOne(ctx, r.db, query, id, passwordHash)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	const query = `
        UPDATE users
        SET role = $2,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, id, role)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, roles []domain.Role, limit, offset int) ([]domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users
        WHERE ($1::text[] IS NULL OR role = ANY($1))
        ORDER BY created_at DESC, id
        LIMIT $2 OFFSET $3
    `
	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, roleArray(roles), limit, offset); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, roles []domain.Role) (int, error) {
	const query = `
        SELECT COUNT(*)
        FROM users
        WHERE ($1::text[] IS NULL OR role = ANY($1))
    `
	var total int
	if err := r.db.GetContext(ctx, &total, query, roleArray(roles)); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id = $1`
	return execOne(ctx, r.db, query, id)
}

// roleArray yields a NULL array when no filter is requested.
func roleArray(roles []domain.Role) pq.StringArray {
	if len(roles) == 0 {
		return nil
	}
	values := make(pq.StringArray, 0, len(roles))
	for _, role := range roles {
		values = append(values, role.String())
	}
	return values
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execOne runs a statement that must touch a row; zero rows is sql.ErrNoRows.
func execOne(ctx context.Context, db execer, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
