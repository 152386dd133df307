package history

import (
	"fmt"
	"sync"
)

// MaxTurns caps the stored conversation.
const MaxTurns = 10

// Store persists the whole conversation at once.
type Store interface {
	Load() ([]Turn, error)
	Save(turns []Turn) error
}

// Manager keeps the recent conversation in memory and writes it through
// to the store on every change.
type Manager struct {
	mu    sync.RWMutex
	store Store
	turns []Turn
	max   int
}

func NewManager(store Store, max int) (*Manager, error) {
	if max <= 0 {
		max = MaxTurns
	}
	m := &Manager{store: store, max: max}
	if store != nil {
		turns, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("load conversation: %w", err)
		}
		m.turns = capTurns(turns, max)
	}
	return m, nil
}

// Append adds a turn, drops the oldest beyond the cap, and persists.
// The in-memory state is updated even if persisting fails.
func (m *Manager) Append(t Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = capTurns(append(m.turns, t), m.max)
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(m.copyUnlocked(len(m.turns))); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}

// Recent returns up to n of the latest turns, oldest first.
func (m *Manager) Recent(n int) []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.copyUnlocked(n)
}

func (m *Manager) All() []Turn { return m.Recent(m.max) }

func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
	if m.store == nil {
		return nil
	}
	return m.store.Save([]Turn{})
}

func (m *Manager) copyUnlocked(n int) []Turn {
	if n > len(m.turns) {
		n = len(m.turns)
	}
	if n <= 0 {
		return []Turn{}
	}
	out := make([]Turn, n)
	copy(out, m.turns[len(m.turns)-n:])
	return out
}

func capTurns(turns []Turn, max int) []Turn {
	if len(turns) <= max {
		return turns
	}
	out := make([]Turn, max)
	copy(out, turns[len(turns)-max:])
	return out
}
