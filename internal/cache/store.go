// Package cache provides a read-through cache in front of the book repository.
package cache

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/redis.v5"
)

// ErrMiss is returned by a Store when the key is absent.
var ErrMiss = errors.New("cache miss")

// Store is the byte-level key/value contract the cache needs.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Del(key string) error
	// Incr atomically adds one to the integer at key, starting from zero.
	Incr(key string) (int64, error)
}

// RedisStore is a Store backed by a Redis server.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr and verifies the server answers.
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(key string) ([]byte, error) {
	b, err := s.client.Get(key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	return b, err
}

func (s *RedisStore) Set(key string, value []byte, ttl time.Duration) error {
	return s.client.Set(key, value, ttl).Err()
}

func (s *RedisStore) Del(key string) error {
	return s.client.Del(key).Err()
}

func (s *RedisStore) Incr(key string) (int64, error) {
	return s.client.Incr(key).Result()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
