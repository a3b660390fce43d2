package booking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	wizardKeyPrefix = "wizard:"
	wizardTTL       = 30 * time.Minute
)

// RedisWizardStore keeps wizard sessions in Redis with a rolling TTL so
// abandoned flows expire on their own.
type RedisWizardStore struct {
	Client *redis.Client
}

func wizardKey(clientID string) string {
	return wizardKeyPrefix + clientID
}

func (s *RedisWizardStore) Load(ctx context.Context, clientID string) (*WizardState, error) {
	data, err := s.Client.Get(ctx, wizardKey(clientID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st WizardState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		// Corrupt payload, treat as absent.
		return nil, nil
	}
	return &st, nil
}

func (s *RedisWizardStore) Save(ctx context.Context, clientID string, st *WizardState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, wizardKey(clientID), data, wizardTTL).Err()
}

func (s *RedisWizardStore) Delete(ctx context.Context, clientID string) error {
	return s.Client.Del(ctx, wizardKey(clientID)).Err()
}

// MemoryWizardStore is an in-process WizardStore used in tests.
type MemoryWizardStore struct {
	mu       sync.Mutex
	sessions map[string]WizardState
}

func NewMemoryWizardStore() *MemoryWizardStore {
	return &MemoryWizardStore{sessions: make(map[string]WizardState)}
}

func (s *MemoryWizardStore) Load(_ context.Context, clientID string) (*WizardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[clientID]
	if !ok {
		return nil, nil
	}
	copied := st
	return &copied, nil
}

func (s *MemoryWizardStore) Save(_ context.Context, clientID string, st *WizardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[clientID] = *st
	return nil
}

func (s *MemoryWizardStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, clientID)
	return nil
}
