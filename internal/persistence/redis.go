package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ideaflow/internal/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// RedisBlobStore stores each blob as a plain Redis string.
type RedisBlobStore struct {
	redis *Redis
}

// NewRedisBlobStore wraps a connected client.
func NewRedisBlobStore(r *Redis) *RedisBlobStore {
	return &RedisBlobStore{redis: r}
}

func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.redis.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *RedisBlobStore) Put(ctx context.Context, key string, value []byte) error {
	return s.redis.Client.Set(ctx, key, value, 0).Err()
}

// PutWithTTL lets Redis drop the key once ttl elapses.
func (s *RedisBlobStore) PutWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.redis.Client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisBlobStore) Delete(ctx context.Context, key string) error {
	return s.redis.Client.Del(ctx, key).Err()
}

func (s *RedisBlobStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx)
}

func (s *RedisBlobStore) Close() error {
	s.redis.Close()
	return nil
}
