// Package cache persists graph snapshots between runs so the server can
// skip a full dataset rebuild on startup. The Redis store is wrapped in a
// circuit breaker: a flapping cache must degrade to a rebuild, never take
// the server down with it.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/drug-interaction-server/internal/domain"
)

const defaultSnapshotKey = "druggraph:snapshot"

// RedisSnapshotStore stores serialized graph snapshots in Redis.
type RedisSnapshotStore struct {
	redis      *redis.Client
	breaker    *gobreaker.CircuitBreaker
	key        string
	defaultTTL time.Duration
	log        *logrus.Logger
}

// NewRedisSnapshotStore creates a Redis-backed snapshot store.
func NewRedisSnapshotStore(config domain.CacheConfig, logger *logrus.Logger) (*RedisSnapshotStore, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing Redis URL: %w", err)
	}

	opts.PoolSize = config.PoolSize
	opts.PoolTimeout = config.PoolTimeout
	opts.MaxRetries = config.MaxRetries

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	key := config.SnapshotKey
	if key == "" {
		key = defaultSnapshotKey
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "SnapshotCache",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Snapshot cache circuit breaker state changed")
		},
	})

	return &RedisSnapshotStore{
		redis:      client,
		breaker:    breaker,
		key:        key,
		defaultTTL: config.DefaultTTL,
		log:        logger,
	}, nil
}

// Save writes the snapshot bytes under the configured key.
func (s *RedisSnapshotStore) Save(ctx context.Context, data []byte) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.redis.Set(ctx, s.key, data, s.defaultTTL).Err()
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return fmt.Errorf("snapshot cache unavailable (circuit breaker open)")
		}
		return fmt.Errorf("saving snapshot: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"key":   s.key,
		"bytes": len(data),
	}).Debug("Graph snapshot saved to cache")
	return nil
}

// Load reads the snapshot bytes. A missing key is a cache miss, not an
// error.
func (s *RedisSnapshotStore) Load(ctx context.Context) ([]byte, bool, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		val, err := s.redis.Get(ctx, s.key).Bytes()
		if err == redis.Nil {
			return []byte(nil), nil
		}
		return val, err
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return nil, false, fmt.Errorf("snapshot cache unavailable (circuit breaker open)")
		}
		return nil, false, fmt.Errorf("loading snapshot: %w", err)
	}

	data := result.([]byte)
	if data == nil {
		return nil, false, nil
	}
	return data, true, nil
}

// Invalidate drops the stored snapshot.
func (s *RedisSnapshotStore) Invalidate(ctx context.Context) error {
	return s.redis.Del(ctx, s.key).Err()
}

// Ping checks if the Redis connection is alive.
func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisSnapshotStore) Close() error {
	return s.redis.Close()
}
