package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store suppresses broker-level redeliveries. Keys are topic/partition/offset,
// so a message that was fully processed once is skipped when the broker hands
// it out again; a logically duplicate event produced at a new offset is not
// deduplicated. A nil *Store disables deduplication entirely.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Key(topic string, partition int, offset int64) string {
	return fmt.Sprintf("idem:%s:%d:%d", topic, partition, offset)
}

// Seen reports whether the key was already marked. It does not mark; call
// Mark only after the message has been fully processed, so a failed message
// stays eligible for redelivery.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	if s == nil {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Mark(ctx context.Context, key string) error {
	if s == nil {
		return nil
	}
	return s.rdb.Set(ctx, key, "1", s.ttl).Err()
}
