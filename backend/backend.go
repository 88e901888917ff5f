package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kvgate/kvgate"
)

// DefaultAddr is the default backend address for a local store.
const DefaultAddr = "127.0.0.1:6379"

// Config holds connection settings for the backend store.
type Config struct {
	Addr        string `mapstructure:"addr" validate:"required"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db" validate:"min=0"`
	DialTimeout int    `mapstructure:"dial_timeout" validate:"min=0"` // seconds, 0 uses the client default
}

// New creates a go-redis client for the configured backend. The client
// connects lazily and pools connections internally; each gateway operation
// checks one out per call.
func New(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: time.Duration(cfg.DialTimeout) * time.Second,
	})
}

// unavailable marks a failed backend call so callers can recognize an
// unreachable store with errors.Is(err, kvgate.ErrBackendUnavailable).
// An error the store itself replied with (wrong type, ACL denial) passes
// through untouched: the connection worked, the command did not.
func unavailable(err error) error {
	var rerr redis.Error
	if errors.As(err, &rerr) {
		return err
	}
	return fmt.Errorf("%w: %v", kvgate.ErrBackendUnavailable, err)
}

// Store executes the read operations the gateway routes expose.
type Store struct {
	rdb *redis.Client
}

// NewStore wraps a client in a Store.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get reads a scalar key. The second return value reports whether the key
// exists; a missing key is not an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, unavailable(err))
	}
	return val, true, nil
}

// HGet reads a single hash field. A missing key or field reports absent,
// not an error.
func (s *Store) HGet(ctx context.Context, key, field string) (string, bool, error) {
	val, err := s.rdb.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("hget %q %q: %w", key, field, unavailable(err))
	}
	return val, true, nil
}

// HGetAll reads a full hash. A missing key yields an empty non-nil map,
// matching the backend's HGETALL semantics.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %q: %w", key, unavailable(err))
	}
	if fields == nil {
		fields = map[string]string{}
	}
	return fields, nil
}
