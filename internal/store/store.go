package store

import (
	"sync"

	"solar_tracker/internal/model"
)

// Store keeps completed simulation runs in memory, keyed by run ID. Runs are
// immutable once stored.
type Store struct {
	mu    sync.RWMutex
	runs  map[string]model.Run
	order []string // insertion order, oldest first
}

func New() *Store {
	return &Store{runs: make(map[string]model.Run)}
}

// Put stores a completed run. Re-storing an existing ID replaces the run
// without duplicating it in the listing order.
func (s *Store) Put(run model.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.Info.ID]; !exists {
		s.order = append(s.order, run.Info.ID)
	}
	s.runs[run.Info.ID] = run
}

// Get returns a stored run by ID.
func (s *Store) Get(id string) (model.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

// List returns the infos of all stored runs, oldest first.
func (s *Store) List() []model.RunInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]model.RunInfo, 0, len(s.order))
	for _, id := range s.order {
		infos = append(infos, s.runs[id].Info)
	}
	return infos
}

// Results returns the last n result records of a run in chronological
// order; n <= 0 or n beyond the history returns everything.
func (s *Store) Results(id string, n int) ([]model.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, false
	}
	if n <= 0 || n > len(run.Results) {
		n = len(run.Results)
	}
	out := make([]model.Result, n)
	copy(out, run.Results[len(run.Results)-n:])
	return out, true
}

// Count returns the number of stored runs.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
