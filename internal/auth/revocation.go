package auth

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_token:"

// Revoker records token IDs that must no longer be accepted.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NopRevoker is used when no Redis is configured. Tokens stay valid until
// they expire.
type NopRevoker struct{}

func (NopRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	return nil
}

func (NopRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return false, nil
}

// RedisRevoker keeps one key per revoked token, expiring with the token.
type RedisRevoker struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client, now: time.Now}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())

	if tokenID == "" || ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()

	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return n > 0, nil
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	options := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	}

	// Managed Redis with a password is reached over TLS.
	if password != "" {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
