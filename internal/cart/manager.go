package cart

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Manager owns one Store per cart session. Stores are created lazily
// and handed to every surface that serves the session, so all of them
// share the same state.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	dataDir string
}

// NewManager creates a cart manager. An empty dataDir keeps carts in
// memory only.
func NewManager(dataDir string) *Manager {
	return &Manager{
		stores:  make(map[string]*Store),
		dataDir: dataDir,
	}
}

// Get returns the session's cart store, creating it on first use
func (m *Manager) Get(sessionID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store, nil
	}

	var persistence Persistence = NopPersistence{}
	if m.dataDir != "" {
		persistence = NewFilePersistence(filepath.Join(m.dataDir, sessionID+".json"))
	}

	store, err := NewStore(persistence)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart for session %s: %w", sessionID, err)
	}

	m.stores[sessionID] = store
	return store, nil
}
