package load

import (
	"context"
	"delivery-cost-service/internal/domain"
	"fmt"
	"sync"
)

// MemoryLoadStore keeps the load level in process. Used when no Redis is configured.
type MemoryLoadStore struct {
	mu   sync.RWMutex
	load domain.Load
}

func NewMemoryLoadStore(initial domain.Load) *MemoryLoadStore {
	if !initial.Valid() {
		initial = domain.LoadNormal
	}
	return &MemoryLoadStore{load: initial}
}

func (s *MemoryLoadStore) Current(ctx context.Context) (domain.Load, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load, nil
}

func (s *MemoryLoadStore) Set(ctx context.Context, l domain.Load) error {
	if !l.Valid() {
		return fmt.Errorf("memory load store: invalid load %q", l)
	}

	s.mu.Lock()
	s.load = l
	s.mu.Unlock()
	return nil
}
