package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/pkg/config"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection error")
	ErrInvalidConfig   = errors.New("cache: invalid configuration")
)

// Config holds the configuration for the Redis client.
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	DefaultTTL       time.Duration
	KeyPrefix        string
	MaxKeyLength     int
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PoolSize:         50,
		MinIdleConns:     5,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: 2 * time.Second,
		DefaultTTL:       15 * time.Minute,
		KeyPrefix:        "trackr:",
		MaxKeyLength:     256,
	}
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c.Password = cfg.Redis.Password
	c.DB = cfg.Redis.DB
	return c
}

// Metrics tracks cache hit/miss statistics with atomic operations.
type Metrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (m *Metrics) Hits() int64   { return m.hits.Load() }
func (m *Metrics) Misses() int64 { return m.misses.Load() }

// RedisClient wraps the Redis client with key validation, JSON encoding and
// hit/miss accounting. Review reports are the only thing cached; entries
// changing invalidates every report of the affected task.
type RedisClient struct {
	client  *redis.Client
	config  *Config
	metrics *Metrics
}

// NewRedisClient creates a new Redis client with the provided configuration
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client:  client,
		config:  cfg,
		metrics: &Metrics{},
	}, nil
}

func (r *RedisClient) Metrics() *Metrics {
	return r.metrics
}

func (r *RedisClient) withContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, r.config.OperationTimeout)
	}
	return ctx, func() {}
}

func (r *RedisClient) validateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: empty key", ErrInvalidConfig)
	}
	if len(key) > r.config.MaxKeyLength {
		return fmt.Errorf("%w: key too long (max %d characters)", ErrInvalidConfig, r.config.MaxKeyLength)
	}
	return nil
}

func (r *RedisClient) prefixKey(key string) string {
	return r.config.KeyPrefix + key
}

// Get loads the JSON value stored at key into dest. The boolean reports
// whether the key was present.
func (r *RedisClient) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if err := r.validateKey(key); err != nil {
		return false, err
	}

	ctx, cancel := r.withContext(ctx)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefixKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			r.metrics.misses.Add(1)
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		// A corrupt payload behaves like a miss; the caller recomputes.
		r.metrics.misses.Add(1)
		return false, nil
	}
	r.metrics.hits.Add(1)
	return true, nil
}

// Set stores value at key as JSON with the default TTL.
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}) error {
	if err := r.validateKey(key); err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	ctx, cancel := r.withContext(ctx)
	defer cancel()

	if err := r.client.Set(ctx, r.prefixKey(key), payload, r.config.DefaultTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// InvalidateTask removes every cached review report of a task.
func (r *RedisClient) InvalidateTask(ctx context.Context, taskID uuid.UUID) error {
	ctx, cancel := r.withContext(ctx)
	defer cancel()

	pattern := r.prefixKey(fmt.Sprintf("review:%s:*", taskID))
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// HealthCheck verifies the Redis connection
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := r.withContext(ctx)
	defer cancel()

	if _, err := r.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}
