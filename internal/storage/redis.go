package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	redisClient *redis.Client
	keyPrefix   string
}

// NewRedisStore returns a Store backed by Redis string keys. Keys are namespaced
// under the given prefix so several sessions can share one database.
func NewRedisStore(redisClient *redis.Client, keyPrefix string) Store {
	return &redisStore{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func (s *redisStore) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load key %s: %w", key, err)
	}

	return val, nil
}

func (s *redisStore) Save(ctx context.Context, key string, value []byte) error {
	err := s.redisClient.Set(ctx, s.keyPrefix+key, value, 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	err := s.redisClient.Del(ctx, s.keyPrefix+key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
