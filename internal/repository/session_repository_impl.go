package repository

import (
	"context"
	"fmt"
	"time"

	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshTokenPrefix = "refresh_token"

type sessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) domainRepo.SessionRepository {
	return &sessionRepository{client: client}
}

func sessionKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", refreshTokenPrefix, userID, tokenID)
}

func (r *sessionRepository) Store(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(userID, tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("store refresh session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	deleted, err := r.client.Del(ctx, sessionKey(userID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revoke refresh session: %w", err)
	}
	return deleted > 0, nil
}

func (r *sessionRepository) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("%s:%s:*", refreshTokenPrefix, userID)
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan refresh sessions: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke refresh sessions: %w", err)
	}
	return nil
}
