package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist tracks tokens revoked by logout
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisBlacklist stores revoked tokens under blacklist:<token>. A nil client
// disables revocation.
type RedisBlacklist struct {
	redis *redis.Client
}

func NewRedisBlacklist(redisClient *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{redis: redisClient}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

func (b *RedisBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if b.redis == nil || ttl <= 0 {
		return nil
	}
	return b.redis.Set(ctx, blacklistKey(token), "1", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	if b.redis == nil {
		return false, nil
	}
	n, err := b.redis.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
