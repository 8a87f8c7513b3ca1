// README: Redis-backed TTL cache of Directions answers.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "route:v1:"

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// CacheKey normalises endpoints so "MG Road " and "mg road" share an entry.
func CacheKey(origin, destination string, waypoints []string) string {
	parts := make([]string, 0, len(waypoints)+2)
	parts = append(parts, norm(origin), norm(destination))
	for _, w := range waypoints {
		parts = append(parts, norm(w))
	}
	return keyPrefix + strings.Join(parts, "|")
}

func norm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Get returns (nil, nil) on a miss.
func (s *Store) Get(ctx context.Context, key string) (*Result, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var r Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) Set(ctx context.Context, key string, r *Result) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, s.ttl).Err()
}
