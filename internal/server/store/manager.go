package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

var ErrGameNotFound = errors.New("game not found")

// Manager 内存里的多局对局表。表本身一把读写锁，每局再一把互斥锁，
// 这样一局的 AI 搜索不会挡住别的对局。
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Entry
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Entry)}
}

func (m *Manager) NewGame(aiSide xiangqi.Side) (*Entry, error) {
	g, err := game.New(aiSide)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e := &Entry{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		g:         g,
	}

	m.mu.Lock()
	m.games[e.ID] = e
	m.mu.Unlock()
	return e, nil
}

func (m *Manager) Get(id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return e, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Prune 删掉超过 maxIdle 没动过的对局，返回删掉的数量
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		e.mu.Lock()
		idle := e.UpdatedAt.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(m.games, id)
			n++
		}
	}
	return n
}
