package storage

import (
	"context"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"weatherdesk.app/config"
	apperrors "weatherdesk.app/errors"
)

// RedisStore is a KeyValueStore backed by redis
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore connects to redis using the given configuration
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperrors.NewStorageError("connect to redis store", err)
	}

	slog.Info("Redis store connected successfully", "addr", cfg.Addr)

	return &RedisStore{
		client: client,
		ctx:    ctx,
	}, nil
}

// Get retrieves the value stored under key
func (r *RedisStore) Get(key string) (string, bool, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		slog.Error("Redis get error", "error", err, "key", key)
		return "", false, apperrors.NewStorageError("read key", err)
	}
	return val, true, nil
}

// Set stores value under key, replacing any prior value
func (r *RedisStore) Set(key, value string) error {
	if err := r.client.Set(r.ctx, key, value, 0).Err(); err != nil {
		slog.Error("Redis set error", "error", err, "key", key)
		return apperrors.NewStorageError("write key", err)
	}
	return nil
}

// Delete removes the value stored under key; missing keys are not an error
func (r *RedisStore) Delete(key string) error {
	if err := r.client.Del(r.ctx, key).Err(); err != nil {
		slog.Error("Redis delete error", "error", err, "key", key)
		return apperrors.NewStorageError("delete key", err)
	}
	return nil
}

// Close closes the redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
