package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	e, err := m.NewGame(xiangqi.Black)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if e.ID == "" {
		t.Fatalf("empty game id")
	}
	got, err := m.Get(e.ID)
	if err != nil || got != e {
		t.Fatalf("get: %v %v", got, err)
	}
	if m.Len() != 1 {
		t.Fatalf("len = %d", m.Len())
	}
	if err := m.Delete(e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(e.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
	if err := m.Delete(e.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestManagerRejectsBadSide(t *testing.T) {
	m := NewManager()
	if _, err := m.NewGame(xiangqi.NoSide); !errors.Is(err, game.ErrInvalidSide) {
		t.Fatalf("err = %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("bad game was registered")
	}
}

func TestEntryWithSerializesAccess(t *testing.T) {
	m := NewManager()
	e, _ := m.NewGame(xiangqi.Black)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.With(func(g *game.Game) error {
				return g.Position().Validate()
			})
		}()
	}
	wg.Wait()

	// 人类走一步，AI 回一步，全部在锁内
	err := e.With(func(g *game.Game) error {
		if _, err := g.RequestMove(xiangqi.Red, 24, 1, -2); err != nil {
			return err
		}
		_, _, err := g.RequestAutomatedMove(1)
		return err
	})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	e.With(func(g *game.Game) error {
		if g.MoveCount() != 2 {
			t.Fatalf("move count = %d", g.MoveCount())
		}
		return nil
	})
}

func TestPrune(t *testing.T) {
	m := NewManager()
	old, _ := m.NewGame(xiangqi.Black)
	fresh, _ := m.NewGame(xiangqi.Red)
	old.UpdatedAt = time.Now().Add(-2 * time.Hour)

	if n := m.Prune(time.Hour); n != 1 {
		t.Fatalf("pruned %d, want 1", n)
	}
	if _, err := m.Get(old.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("old game survived prune")
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Fatalf("fresh game pruned: %v", err)
	}
}
