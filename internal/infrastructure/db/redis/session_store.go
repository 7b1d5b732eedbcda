package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pickit/print-system/internal/core/domain"
)

// SessionStore keeps per-user session state in Redis.
// Key format: session:<user_id>:<field>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) SaveRole(ctx context.Context, userID, role string) error {
	return s.client.Set(ctx, s.key(userID, "role"), role, 0).Err()
}

func (s *SessionStore) Role(ctx context.Context, userID string) (string, error) {
	return s.get(ctx, s.key(userID, "role"))
}

func (s *SessionStore) SaveProfile(ctx context.Context, userID string, profile domain.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.client.Set(ctx, s.key(userID, "profile"), raw, 0).Err()
}

func (s *SessionStore) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	raw, err := s.get(ctx, s.key(userID, "profile"))
	if err != nil || raw == "" {
		return nil, err
	}
	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (s *SessionStore) SaveBinding(ctx context.Context, userID, shopID string) error {
	return s.client.Set(ctx, s.key(userID, "shop"), shopID, 0).Err()
}

func (s *SessionStore) Binding(ctx context.Context, userID string) (string, error) {
	return s.get(ctx, s.key(userID, "shop"))
}

func (s *SessionStore) ClearBinding(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID, "shop")).Err()
}

// get treats a missing key as an empty value, not an error.
func (s *SessionStore) get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session get: %w", err)
	}
	return val, nil
}

func (s *SessionStore) key(userID, field string) string {
	return fmt.Sprintf("session:%s:%s", userID, field)
}
