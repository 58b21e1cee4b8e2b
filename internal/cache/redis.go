// Redis 연결 초기화 유틸. Refresh Token 캐시와 토큰 블랙리스트가 공유한다.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/maeum-crm/backend/internal/config"
)

// ErrNotFound is returned when a cache key has no value (or it expired).
var ErrNotFound = errors.New("cache: entry not found")

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	dbNum, err := strconv.Atoi(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	opTimeout, err := time.ParseDuration(cfg.OpTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_OP_TIMEOUT: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           dbNum,
		DialTimeout:  opTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
