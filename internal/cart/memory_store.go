package cart

import (
	"context"
	"sync"
)

// MemoryStore keeps the cart in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	state State
}

// NewMemoryStore seeds an in-memory store with entries in display order.
func NewMemoryStore(entries ...Entry) *MemoryStore {
	return &MemoryStore{state: NewState(entries...)}
}

func (s *MemoryStore) Snapshot(ctx context.Context) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewState(s.state.entries...), nil
}

func (s *MemoryStore) Dispatch(ctx context.Context, intent Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := Apply(s.state, intent)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}
