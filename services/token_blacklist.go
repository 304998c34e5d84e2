package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const blacklistKeyPrefix = "blacklist:"

// RedisTokenBlacklist revokes bearer tokens ahead of their natural expiry.
// Revocations come from outside this process (ops tooling, the account
// system); the authenticator only consults the list.
type RedisTokenBlacklist struct {
	Client *redis.Client
}

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

// Revoke blacklists a token until it would have expired anyway.
func (tb *RedisTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	return tb.Client.Set(ctx, blacklistKeyPrefix+token, "revoked", ttl).Err()
}

// IsRevoked reports whether the token has been blacklisted. Redis being
// unreachable is treated as not-revoked: availability over strictness, and
// the token's own signature and expiry checks still apply.
func (tb *RedisTokenBlacklist) IsRevoked(ctx context.Context, token string) bool {
	n, err := tb.Client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		logrus.WithError(err).Warn("token blacklist lookup failed")
		return false
	}
	return n > 0
}

func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}
