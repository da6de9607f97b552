package store

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisBackend keeps each document under <prefix><name>.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (b *RedisBackend) Write(ctx context.Context, name string, data []byte) error {
	return b.client.Set(ctx, b.prefix+name, data, 0).Err()
}

func (b *RedisBackend) Name() string {
	return "redis"
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
