package domain

import (
	"time"

	"github.com/google/uuid"
)

type PasswordReset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	TokenHash string    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Used      bool      `db:"used" json:"used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Actionable reports whether the token can still be redeemed at now.
// Used and expired are both terminal.
func (r *PasswordReset) Actionable(now time.Time) bool {
	return !r.Used && now.Before(r.ExpiresAt)
}
