package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/infrastructure/redis"
)

// RedisRepository persists session snapshots in Redis so sessions survive a
// console restart. Keys expire with the session TTL.
type RedisRepository struct {
	redis *redis.Client
}

// NewRedisRepository creates a session repository on top of a Redis client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{redis: client}
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

// Save stores a session snapshot under its id with the given TTL.
func (r *RedisRepository) Save(ctx context.Context, sid string, session *domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.redis.Set(ctx, sessionKey(sid), string(data), ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get retrieves a session snapshot. A missing key reads as ErrNoSession.
func (r *RedisRepository) Get(ctx context.Context, sid string) (*domain.Session, error) {
	data, err := r.redis.Get(ctx, sessionKey(sid))
	if err != nil {
		if redis.IsMissing(err) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session snapshot. Deleting a missing key is not an error.
func (r *RedisRepository) Delete(ctx context.Context, sid string) error {
	if err := r.redis.Delete(ctx, sessionKey(sid)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
