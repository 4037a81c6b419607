package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session keys in a Redis hash, for deployments where
// the portal runs more than one replica behind a balancer and a local
// file would not be shared.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(url, hashKey string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if hashKey == "" {
		hashKey = "clinic_portal:session"
	}
	return &RedisStore{client: client, key: hashKey}, nil
}

func (s *RedisStore) Get(key string) (string, bool, error) {
	v, err := s.client.HGet(context.Background(), s.key, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get failed: %w", err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(key, value string) error {
	if err := s.client.HSet(context.Background(), s.key, key, value).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(key string) error {
	if err := s.client.HDel(context.Background(), s.key, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
