package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ronnaro/ata-academica-plus/config"
)

// Client wraps the redis connection. Used for the per-session role cache and
// for refresh-token revocation.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects and pings the redis server.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── token revocation ──

const revokedPrefix = "token:revoked:"

// RevokeToken marks a JWT ID as revoked until the token would expire anyway.
func (c *Client) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired
	}
	return c.rdb.Set(ctx, revokedPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether a JWT ID has been revoked.
func (c *Client) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── session role cache ──

const rolePrefix = "session:role:"

// CacheRole stores the directory role for a user for the session's liveness.
func (c *Client) CacheRole(ctx context.Context, userID, role string, ttl time.Duration) error {
	return c.rdb.Set(ctx, rolePrefix+userID, role, ttl).Err()
}

// CachedRole returns the cached role, or "" on miss.
func (c *Client) CachedRole(ctx context.Context, userID string) (string, error) {
	role, err := c.rdb.Get(ctx, rolePrefix+userID).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

// DropRole removes the cached role, e.g. on logout or role change.
func (c *Client) DropRole(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, rolePrefix+userID).Err()
}

// ── rate limiting ──

// CheckRateLimit counts requests against key in a fixed window and reports
// whether the caller is still under limit. The first hit arms the window
// expiry.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
