package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists drafts in Redis so an operator can resume an order
// from another device. Drafts expire after TTL of inactivity.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed draft store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "pos:draft:",
		ttl:    ttl,
	}
}

func (s *RedisStore) key(operatorID string) string {
	return s.prefix + operatorID
}

// Load retrieves the draft for an operator
func (s *RedisStore) Load(ctx context.Context, operatorID string) (*OrderDraft, error) {
	data, err := s.client.Get(ctx, s.key(operatorID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to load order draft: %w", err)
	}

	draft := &OrderDraft{}
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, fmt.Errorf("failed to decode order draft: %w", err)
	}

	return draft, nil
}

// Save stores the draft for an operator and refreshes its TTL
func (s *RedisStore) Save(ctx context.Context, operatorID string, draft *OrderDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode order draft: %w", err)
	}

	if err := s.client.Set(ctx, s.key(operatorID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save order draft: %w", err)
	}

	return nil
}

// Clear discards the operator's draft
func (s *RedisStore) Clear(ctx context.Context, operatorID string) error {
	if err := s.client.Del(ctx, s.key(operatorID)).Err(); err != nil {
		return fmt.Errorf("failed to clear order draft: %w", err)
	}
	return nil
}
