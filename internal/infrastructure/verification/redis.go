package verification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"jobboard/internal/config"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps codes in redis so they survive restarts and are shared
// across instances. When redis is unreachable at startup it degrades to the
// in-process MemoryStore instead of dropping codes.
type RedisStore struct {
	client   *redis.Client
	fallback *MemoryStore
	logger   *log.Logger
}

func NewRedisStore(cfg config.RedisConfig, logger *log.Logger) *RedisStore {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: strings.TrimSpace(cfg.Password),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Verification] Redis unavailable, using in-memory store: %v", err)
		}
		_ = client.Close()
		return &RedisStore{client: nil, fallback: NewMemoryStore(), logger: logger}
	}

	return &RedisStore{client: client, fallback: NewMemoryStore(), logger: logger}
}

func key(email string) string {
	return "verify:" + strings.ToLower(strings.TrimSpace(email))
}

func (s *RedisStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	if s.client == nil {
		return s.fallback.Put(ctx, email, code, ttl)
	}
	return s.client.Set(ctx, key(email), code, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (string, bool, error) {
	if s.client == nil {
		return s.fallback.Get(ctx, email)
	}
	code, err := s.client.Get(ctx, key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return code, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if s.client == nil {
		return s.fallback.Delete(ctx, email)
	}
	return s.client.Del(ctx, key(email)).Err()
}

func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
