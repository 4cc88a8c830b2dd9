package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal is the caller identity carried by a bearer token. It is never
// persisted; trust comes from the token signature alone.
type Principal struct {
	UserID    uuid.UUID
	Email     string
	Name      string
	Role      Role
	ExpiresAt time.Time
}

func (p Principal) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}
