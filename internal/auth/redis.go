package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const credentialKey = "storefront:current_user"

// RedisCredentialStore keeps the current-user record in Redis so the session
// survives process restarts.
type RedisCredentialStore struct {
	client *redis.Client
}

func NewRedisCredentialStore(client *redis.Client) *RedisCredentialStore {
	return &RedisCredentialStore{client: client}
}

func (s *RedisCredentialStore) Get(ctx context.Context) (*User, error) {
	data, err := s.client.Get(ctx, credentialKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("unmarshal credentials failed: %w", err)
	}
	return &u, nil
}

func (s *RedisCredentialStore) Put(ctx context.Context, u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal credentials failed: %w", err)
	}
	if err := s.client.Set(ctx, credentialKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisCredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, credentialKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

var _ CredentialStore = (*RedisCredentialStore)(nil)
