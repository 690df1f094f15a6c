package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository tracks the refresh tokens that are still redeemable.
type SessionRepository interface {
	Store(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	// Revoke reports whether the session existed. Only one concurrent caller sees true.
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}
