package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists session histories in Redis
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configuration for the Redis session store
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "travelbot:history:"
	TTL      time.Duration // Session expiration, default 0 (no expiration)
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new Redis-backed session store
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "travelbot:history:"
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

// Load returns the history for a session
func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]Turn, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []Turn{}, nil
		}
		return nil, fmt.Errorf("failed to load history from redis: %w", err)
	}

	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return turns, nil
}

// Save replaces the history for a session
func (s *RedisStore) Save(ctx context.Context, sessionID string, turns []Turn) error {
	data, err := json.Marshal(Truncate(turns))
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save history to redis: %w", err)
	}
	return nil
}

// Delete removes a session's history
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete history from redis: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
