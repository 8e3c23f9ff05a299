package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vitrine/vitrine-backend/config"
	"github.com/vitrine/vitrine-backend/pkg/logger"
)

var client *redis.Client

// Init initializes the Redis connection. Redis is optional: when no host is
// configured the token blacklist is simply disabled.
func Init(cfg *config.RedisConfig) error {
	if cfg.Host == "" {
		logger.Info("Redis not configured, token blacklist disabled")
		return nil
	}

	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// BlacklistToken stores a revoked token until its natural expiry
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		return nil
	}
	return client.Set(ctx, blacklistKey(token), "revoked", expiry).Err()
}

// IsTokenBlacklisted reports whether a token has been revoked
func IsTokenBlacklisted(ctx context.Context, token string) bool {
	if client == nil {
		return false
	}
	exists, err := client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		logger.Error("Failed to check token blacklist", err)
		return false
	}
	return exists > 0
}

func blacklistKey(token string) string {
	return "token:blacklist:" + token
}
