package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a login session for a studio client or admin. The token
// doubles as the bearer credential.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
