package storage

import (
	"context"
	"sort"
	"sync"

	"neoagtwin/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.SimulationRun
	rows        map[string][]model.PresentationRow
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.SimulationRun)
	s.rows = make(map[string][]model.PresentationRow)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.SimulationRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.SimulationRun, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.SimulationRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

func (s *MemoryStore) SaveRows(_ context.Context, runID string, rows []model.PresentationRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[runID] = append([]model.PresentationRow(nil), rows...)
	return nil
}

func (s *MemoryStore) GetRows(_ context.Context, runID string) ([]model.PresentationRow, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.rows[runID]
	if !ok {
		return nil, false, nil
	}
	return append([]model.PresentationRow(nil), rows...), true, nil
}
