package session

import (
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one Reconciler per client ID so every client's session
// has a single writer.
type Manager struct {
	remote   RemoteAuth
	profiles ProfileSource
	store    Store
	logger   *zap.Logger

	mu       sync.Mutex
	byClient map[string]*Reconciler
}

// NewManager creates a Manager wiring every reconciler to the same sources.
func NewManager(remote RemoteAuth, profiles ProfileSource, store Store, logger *zap.Logger) *Manager {
	return &Manager{
		remote:   remote,
		profiles: profiles,
		store:    store,
		logger:   logger,
		byClient: make(map[string]*Reconciler),
	}
}

// For returns the client's reconciler, creating it on first use.
func (m *Manager) For(clientID string) *Reconciler {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.byClient[clientID]; ok {
		return r
	}
	r := NewReconciler(clientID, m.remote, m.profiles, m.store, m.logger)
	m.byClient[clientID] = r
	return r
}

// Drop forgets the client's reconciler. The next For call starts fresh.
func (m *Manager) Drop(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byClient, clientID)
}

// Store exposes the admin session store for the route guards.
func (m *Manager) Store() Store {
	return m.store
}
