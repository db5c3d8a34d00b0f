package cart

import (
	"errors"
	"path/filepath"
	"sync"
)

// ErrInvalidCartID rejects cart ids that cannot name a storage slot.
var ErrInvalidCartID = errors.New("invalid cart id")

// Manager hands out one Store per cart id, each bound to its own file slot
// under dir. Stores are created lazily and kept for the process lifetime.
type Manager struct {
	mu     sync.Mutex
	dir    string
	stores map[string]*Store
}

func NewManager(dir string) *Manager {
	return &Manager{
		dir:    dir,
		stores: make(map[string]*Store),
	}
}

// Get returns the Store for id, loading its persisted state on first access.
func (m *Manager) Get(id string) (*Store, error) {
	if !validCartID(id) {
		return nil, ErrInvalidCartID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[id]; ok {
		return store, nil
	}

	store := NewStore(NewFileStorage(filepath.Join(m.dir, id+".json")))
	m.stores[id] = store
	return store, nil
}

// validCartID allows only slot-safe names so ids cannot escape the cart dir.
func validCartID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
