package main

import (
	"context"
	"errors"
	"math/rand"

	"xiangqi/internal/engine"
	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

type Player struct {
	Name  string
	Depth int
}

type Match struct {
	Red, Black  Player
	RandomPlies int // 开头随机走几步，不然两边搜索都是确定的，每局一样
	Seed        int64
}

type MatchResult struct {
	Status game.Status
	Plies  int
	Nodes  int64
}

// PlayGame 下完一局。每局自己的 Game，也就自带一个 Engine，可以并发跑。
func PlayGame(ctx context.Context, m Match) (MatchResult, error) {
	// AI 方对自对弈没有意义，随便填
	g, err := game.New(xiangqi.Black)
	if err != nil {
		return MatchResult{}, err
	}
	rng := rand.New(rand.NewSource(m.Seed))
	var nodes int64

	for !g.Status().Terminal() {
		if err := ctx.Err(); err != nil {
			return MatchResult{}, err
		}
		side := g.SideToMove()

		if g.MoveCount() < m.RandomPlies {
			moves := g.Position().LegalMoves(side)
			mv := moves[rng.Intn(len(moves))]
			if _, err := g.RequestMove(side, mv.Piece, int(mv.DFile), int(mv.DRank)); err != nil {
				return MatchResult{}, err
			}
			continue
		}

		p := m.Red
		if side == xiangqi.Black {
			p = m.Black
		}
		_, sr, err := g.RequestAutomatedMove(p.Depth)
		nodes += sr.Nodes
		if errors.Is(err, engine.ErrNoLegalMove) {
			break
		}
		if err != nil {
			return MatchResult{}, err
		}
	}
	return MatchResult{Status: g.Status(), Plies: g.MoveCount(), Nodes: nodes}, nil
}

// Tally 从 A 的角度记分
type Tally struct {
	AWins, BWins, Draws, Stalemates int
}

func (t *Tally) Add(r MatchResult, aIsRed bool) {
	w, ok := r.Status.Winner()
	switch {
	case ok && (w == xiangqi.Red) == aIsRed:
		t.AWins++
	case ok:
		t.BWins++
	case r.Status == game.StatusStalemate:
		t.Stalemates++
	default:
		t.Draws++
	}
}
