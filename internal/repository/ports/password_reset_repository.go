package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.PasswordReset, error)
	FindActiveByHash(ctx context.Context, tokenHash string, now time.Time) (*domain.PasswordReset, error)
	ConsumeByUser(ctx context.Context, userID uuid.UUID) error
	// Redeem marks the reset used and stores the new password hash in one
	// transaction. It returns sql.ErrNoRows when the reset no longer qualifies.
	Redeem(ctx context.Context, resetID int64, userID uuid.UUID, passwordHash string, now time.Time) error
	PurgeStale(ctx context.Context, now time.Time) (int64, error)
}
