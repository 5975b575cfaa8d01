package memory

import (
	"context"
	"sync"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultRepository.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.SavedResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]domain.SavedResult),
	}
}

func (s *ResultStore) Save(_ context.Context, result domain.SavedResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.SessionID] = result
	return nil
}

func (s *ResultStore) Get(_ context.Context, sessionID string) (domain.SavedResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[sessionID]
	if !ok {
		return domain.SavedResult{}, domain.ErrResultNotFound
	}
	return result, nil
}
