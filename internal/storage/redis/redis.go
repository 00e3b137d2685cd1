package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/FItraRizky/fro/internal/storage"
	"github.com/FItraRizky/fro/pkg/breaker"
	apperrors "github.com/FItraRizky/fro/pkg/errors"
)

// Config holds Redis connection configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient creates a Redis client and verifies the connection.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Store implements storage.KeyValue using Redis. Every key is written with
// the configured TTL, so abandoned sessions expire. Calls go through a circuit
// breaker; while it is open they fail fast with a service-unavailable error.
type Store struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
	slow    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithSlowThreshold sets the duration above which operations are logged as
// slow. Zero disables slow operation logging.
func WithSlowThreshold(d time.Duration) Option {
	return func(s *Store) { s.slow = d }
}

// New creates a Redis-backed store. A zero ttl keeps keys forever.
func New(client *redis.Client, ttl time.Duration, cbCfg breaker.Config, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		client:  client,
		ttl:     ttl,
		breaker: breaker.New[[]byte](cbCfg, logger),
		logger:  logger,
		slow:    DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, end := s.trace(ctx, "GET", key)
	defer func() { end(err) }()

	data, err := s.execute(func() ([]byte, error) {
		data, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// A missing key is an answer, not a failure of the backend.
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("redis get: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, storage.NotFound(key)
	}
	return data, nil
}

// Set stores value under key with the configured TTL.
func (s *Store) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, end := s.trace(ctx, "SET", key)
	defer func() { end(err) }()

	_, err = s.execute(func() ([]byte, error) {
		if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("redis set: %w", err)
		}
		return nil, nil
	})
	return err
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) (err error) {
	ctx, end := s.trace(ctx, "DEL", key)
	defer func() { end(err) }()

	_, err = s.execute(func() ([]byte, error) {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return nil, fmt.Errorf("redis del: %w", err)
		}
		return nil, nil
	})
	return err
}

// Ping checks connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) execute(fn func() ([]byte, error)) ([]byte, error) {
	data, err := s.breaker.Execute(fn)
	if errors.Is(err, breaker.ErrOpen) || errors.Is(err, breaker.ErrTooManyRequests) {
		return nil, apperrors.Unavailable("redis", err)
	}
	return data, err
}
