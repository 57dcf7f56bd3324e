package datastate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "numcheck:fetch:"
	stateTTL  = 30 * 24 * time.Hour
)

// FetchState is what the conditional download of one source file remembers
// between refreshes: the validators upstream sent and the hash of the content
// it produced.
type FetchState struct {
	ETag         string `redis:"etag"`
	LastModified string `redis:"last_modified"`
	ContentHash  string `redis:"content_hash"`
}

// Store keeps per-source fetch state in Redis so every replica shares one
// view of what upstream last served.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get returns the remembered state for a source, or the zero state when the
// source has never been fetched.
func (s *Store) Get(ctx context.Context, source string) (FetchState, error) {
	var state FetchState

	if err := s.client.HGetAll(ctx, keyPrefix+source).Scan(&state); err != nil {
		return FetchState{}, fmt.Errorf("redis.HGetAll: %w", err)
	}

	return state, nil
}

func (s *Store) Set(ctx context.Context, source string, state FetchState) error {
	key := keyPrefix + source

	if err := s.client.HSet(ctx, key, state).Err(); err != nil {
		return fmt.Errorf("redis.HSet: %w", err)
	}

	if err := s.client.Expire(ctx, key, stateTTL).Err(); err != nil {
		return fmt.Errorf("redis.Expire: %w", err)
	}

	return nil
}
