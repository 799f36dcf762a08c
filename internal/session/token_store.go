package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Data is what a live admin session carries in redis.
type Data struct {
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenStore keeps issued admin tokens in redis so logout can revoke them.
// When no redis is configured the auth gate runs stateless and this store is
// simply not wired in.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{
		client: client,
	}
}

func key(token string) string {
	return fmt.Sprintf("session:token:%s", token)
}

func (s *TokenStore) Store(ctx context.Context, token string, data Data, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := s.client.Set(ctx, key(token), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}

	return nil
}

// Validate returns the session data for a live token, or an error when the
// token is unknown or already revoked.
func (s *TokenStore) Validate(ctx context.Context, token string) (*Data, error) {
	raw, err := s.client.Get(ctx, key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("session not found or revoked")
		}
		return nil, fmt.Errorf("failed to look up session token: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &data, nil
}

func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}

	return nil
}
