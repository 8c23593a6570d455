package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Get when the key does not exist
var ErrCacheMiss = errors.New("redis: cache miss")

// Client is the small cache surface the service needs. A disabled client
// accepts every call and stores nothing, so callers never branch on config.
type Client interface {
	IsEnabled() bool
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient returns a go-redis backed client, or a no-op client when
// cfg.Enabled is false. The connection is checked lazily; an unreachable
// server shows up in health checks and cache errors rather than at startup.
func NewClient(cfg Config, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("Redis cache disabled")
		return disabledClient{}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	logger.Info("Redis client configured",
		zap.String("address", cfg.Address()),
		zap.Int("database", cfg.DB),
	)

	return &client{rdb: rdb, logger: logger}
}

// NewFromClient wraps an existing go-redis client
func NewFromClient(rdb *goredis.Client, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &client{rdb: rdb, logger: logger}
}

func (c *client) IsEnabled() bool {
	return true
}

func (c *client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *client) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrCacheMiss
		}
		c.logger.Error("Failed to get cache",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	c.logger.Debug("Cache hit",
		zap.String("key", key),
		zap.Int("data_size", len(data)),
	)
	return data, nil
}

func (c *client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Error("Failed to set cache",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)
		return fmt.Errorf("failed to set cache: %w", err)
	}

	c.logger.Debug("Cache set successfully",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
		zap.Int("data_size", len(value)),
	)
	return nil
}

func (c *client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("Failed to delete cache",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

func (c *client) Close() error {
	return c.rdb.Close()
}

type disabledClient struct{}

func (disabledClient) IsEnabled() bool                { return false }
func (disabledClient) Ping(ctx context.Context) error { return nil }
func (disabledClient) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrCacheMiss
}
func (disabledClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
func (disabledClient) Delete(ctx context.Context, keys ...string) error { return nil }
func (disabledClient) Close() error                                    { return nil }
