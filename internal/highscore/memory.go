package highscore

import (
	"context"
	"sync"
)

type memory struct {
	mu     sync.RWMutex
	scores map[string]int
}

// NewMemoryStore returns a Store that forgets everything on restart.
func NewMemoryStore() Store {
	return &memory{scores: make(map[string]int)}
}

func (m *memory) Load(_ context.Context, playerID string) (int, error) {
	if err := validatePlayer(playerID); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scores[playerID], nil
}

func (m *memory) Save(_ context.Context, playerID string, score int) (int, error) {
	if err := validate(playerID, score); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.scores[playerID] {
		m.scores[playerID] = score
	}
	return m.scores[playerID], nil
}

// Close is a no-op.
func (m *memory) Close() error { return nil }
