package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"glowbook/models"
	"glowbook/utils"

	"github.com/go-redis/redis/v8"
)

// AdminSessionPrefix is the Redis key prefix for persisted admin sessions.
const AdminSessionPrefix = "adminSession:"

// RedisStore persists admin session payloads in the auth Redis database.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load returns the stored admin payload, or (nil, nil) when absent. A
// corrupt payload is treated as absent.
func (s *RedisStore) Load(ctx context.Context, clientID string) (*models.User, error) {
	data, err := s.client.Get(ctx, AdminSessionPrefix+clientID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load admin session: %w", err)
	}
	var u models.User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, nil
	}
	return &u, nil
}

// Save stores the admin payload with the admin-token lifetime.
func (s *RedisStore) Save(ctx context.Context, clientID string, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal admin session: %w", err)
	}
	if err := s.client.Set(ctx, AdminSessionPrefix+clientID, data, utils.AdminTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to save admin session: %w", err)
	}
	return nil
}

// Clear removes the stored admin payload.
func (s *RedisStore) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, AdminSessionPrefix+clientID).Err()
}

// MemoryStore is an in-process Store, used where Redis is unavailable and
// throughout the tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.User
}

// NewMemoryStore creates an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.User)}
}

func (s *MemoryStore) Load(_ context.Context, clientID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.sessions[clientID]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, clientID string, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[clientID] = *u
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, clientID)
	return nil
}
