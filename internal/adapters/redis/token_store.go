package redis

// Package redis provides Redis-backed adapters for the company console.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces console keys inside a shared Redis database.
const DefaultKeyPrefix = "console:token:"

// TokenStore is a Redis-based token store shared by every console process pointed at
// the same Redis. Tokens never expire in Redis; the backend decides when a token is stale.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

// TokenStoreOptions configures NewTokenStore.
type TokenStoreOptions struct {
	Prefix     string
	Origin     string
	StorageKey string
}

// NewTokenStore creates a Redis token store for one API origin.
func NewTokenStore(client redis.UniversalClient, opts TokenStoreOptions) (*TokenStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if opts.Origin == "" {
		return nil, errors.New("token origin is required")
	}
	if opts.StorageKey == "" {
		return nil, errors.New("token storage key is required")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &TokenStore{
		client: client,
		key:    prefix + opts.Origin + ":" + opts.StorageKey,
	}, nil
}

// Key returns the Redis key holding the token.
func (s *TokenStore) Key() string { return s.key }

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenStore) Read(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
