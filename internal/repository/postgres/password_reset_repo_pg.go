package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

const resetColumns = `id, user_id, token_hash, expires_at, used, created_at`

type PasswordResetRepository struct {
	db *sqlx.DB
}

func NewPasswordResetRepo(db *sqlx.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) ConsumeByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE password_reset_tokens
        SET used = TRUE,
            updated_at = NOW()
        WHERE user_id = $1 AND used = FALSE
    `
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *PasswordResetRepository) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.PasswordReset, error) {
	const query = `
        INSERT INTO password_reset_tokens (user_id, token_hash, expires_at)
        VALUES ($1, $2, $3)
        RETURNING ` + resetColumns

	row := r.db.QueryRowxContext(ctx, query, userID, tokenHash, expiresAt)
	var reset domain.PasswordReset
	if err := row.StructScan(&reset); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) FindActiveByHash(ctx context.Context, tokenHash string, now time.Time) (*domain.PasswordReset, error) {
	const query = `
        SELECT ` + resetColumns + `
        FROM password_reset_tokens
        WHERE token_hash = $1 AND used = FALSE AND expires_at > $2
    `
	var reset domain.PasswordReset
	if err := r.db.GetContext(ctx, &reset, query, tokenHash, now); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) Redeem(ctx context.Context, resetID int64, userID uuid.UUID, passwordHash string, now time.Time) error {
	const claim = `
        UPDATE password_reset_tokens
        SET used = TRUE,
            updated_at = NOW()
        WHERE id = $1 AND user_id = $2 AND used = FALSE AND expires_at > $3
    `
	const updatePassword = `
        UPDATE users
        SET password_hash = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	const retireOthers = `
        UPDATE password_reset_tokens
        SET used = TRUE,
            updated_at = NOW()
        WHERE user_id = $1 AND used = FALSE
    `
	return WithTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := execOne(ctx, tx, claim, resetID, userID, now); err != nil {
			return err
		}
		if err := execOne(ctx, tx, updatePassword, userID, passwordHash); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, retireOthers, userID)
		return err
	})
}

func (r *PasswordResetRepository) PurgeStale(ctx context.Context, now time.Time) (int64, error) {
	const query = `
        DELETE FROM password_reset_tokens
        WHERE used = TRUE OR expires_at <= $1
    `
	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

var _ ports.PasswordResetRepository = (*PasswordResetRepository)(nil)
