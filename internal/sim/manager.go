package sim

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"solar_tracker/internal/model"
	"solar_tracker/internal/store"
)

// ErrRunInProgress is returned by Start while a previous run is still active.
var ErrRunInProgress = errors.New("sim: a run is already in progress")

// Manager owns simulation engines: it starts runs on background goroutines,
// exposes the current run for status queries and archives finished runs.
// One run is active at a time.
type Manager struct {
	mu        sync.Mutex
	archive   *store.Store
	current   *Engine
	currentID string
	startedAt time.Time
}

func NewManager(archive *store.Store) *Manager {
	return &Manager{archive: archive}
}

// Start validates cfg, builds a fresh engine and launches the run in the
// background, reporting progress through cb (which may be nil). Returns the
// new run's ID.
func (m *Manager) Start(cfg Config, cb Callback) (string, error) {
	engine, err := New(cfg)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	if m.current != nil && m.current.Running() {
		m.mu.Unlock()
		return "", ErrRunInProgress
	}
	id := uuid.NewString()
	started := time.Now()
	m.current = engine
	m.currentID = id
	m.startedAt = started
	m.mu.Unlock()

	go func() {
		if err := engine.Run(cb); err != nil {
			log.Printf("run %s: %v", id, err)
		}
		m.archiveRun(id, engine, started)
	}()

	return id, nil
}

// Current returns the active or most recently started engine and its run ID.
func (m *Manager) Current() (*Engine, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, "", false
	}
	return m.current, m.currentID, true
}

func (m *Manager) archiveRun(id string, engine *Engine, startedAt time.Time) {
	results := engine.LatestResults(0)
	m.archive.Put(model.Run{
		Info: model.RunInfo{
			ID:          id,
			Controller:  engine.Config().Controller,
			State:       engine.State(),
			StartedAt:   startedAt,
			CompletedAt: time.Now(),
			Steps:       len(results),
		},
		Results: results,
		Summary: engine.SummaryStats(),
	})
}
