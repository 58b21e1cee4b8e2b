package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh_token:"

// RefreshTokenStore keeps the single current refresh token per user.
// Store overwrites unconditionally: the latest login wins.
type RefreshTokenStore struct {
	rdb *redis.Client
}

func NewRefreshTokenStore(rdb *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{rdb: rdb}
}

func refreshKey(userID int64) string {
	return fmt.Sprintf("%s%d", refreshKeyPrefix, userID)
}

func (s *RefreshTokenStore) Store(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) Get(ctx context.Context, userID int64) (string, error) {
	value, err := s.rdb.Get(ctx, refreshKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	return value, nil
}

func (s *RefreshTokenStore) Delete(ctx context.Context, userID int64) error {
	if err := s.rdb.Del(ctx, refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
