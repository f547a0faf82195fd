package store

import (
	"sync"
	"time"

	"xiangqi/internal/game"
)

// Entry 一局对局。Game 本身不加锁，所有访问都经过 With。
type Entry struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu sync.Mutex
	g  *game.Game
}

// With 在持锁状态下调用 fn；搜索也在锁内跑完，走子撤销期间不会有别人读局面
func (e *Entry) With(fn func(g *game.Game) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := fn(e.g)
	e.UpdatedAt = time.Now()
	return err
}
