package host

import "sync"

// BestScores persists the all-time best score.
// Save errors are reported but never stop a session.
type BestScores interface {
	Best() (int, error)
	SaveBest(score int) error
}

// MemoryBest keeps the best score in memory. It is safe for concurrent use.
type MemoryBest struct {
	mu    sync.Mutex
	best  int
	saves int
}

// NewMemoryBest returns a store that starts with the given best score.
func NewMemoryBest(best int) *MemoryBest {
	return &MemoryBest{best: best}
}

// Best returns the stored best score.
func (m *MemoryBest) Best() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// SaveBest replaces the stored best score.
func (m *MemoryBest) SaveBest(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = score
	m.saves++
	return nil
}

// Saves returns how many times SaveBest was called.
func (m *MemoryBest) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
