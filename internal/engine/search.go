package engine

import (
	"fmt"
	"time"

	"xiangqi/internal/xiangqi"
)

// TieBreak 决定根节点同分着法取哪一个
type TieBreak int8

const (
	TieBreakLast  TieBreak = iota // 同分取最后枚举到的（默认）
	TieBreakFirst                 // 同分取最先枚举到的
)

// 搜索配置
type SearchConfig struct {
	Depth    int // 搜索深度（ply），1..3
	TieBreak TieBreak
}

// RootScore 根节点每个着法及其子树返回值
type RootScore struct {
	Move  xiangqi.Move `json:"move"`
	Score int          `json:"score"`
}

// 搜索结果
type SearchResult struct {
	BestMove   xiangqi.Move
	Score      int          // 从搜索方视角
	Captured   xiangqi.Kind // 最佳着法吃掉的子，没有则 KindNone
	Candidates []RootScore  // 按枚举顺序
	Depth      int
	Nodes      int64
	TimeUsed   time.Duration
}

// Search 为 side 选一步棋。局面原地走子/悔棋，返回时与调用前逐位相同。
// 根节点无棋可走时返回 ErrNoLegalMove。
func (e *Engine) Search(pos *xiangqi.Position, side xiangqi.Side, cfg SearchConfig) (SearchResult, error) {
	if cfg.Depth < MinDepth || cfg.Depth > MaxDepth {
		return SearchResult{}, fmt.Errorf("%w: %d", ErrInvalidDepth, cfg.Depth)
	}
	start := time.Now()
	rootHash := pos.Hash

	e.side = side
	e.limit = cfg.Depth
	e.nodes = 1

	moves := pos.GenerateMoves(side, e.buf[0])
	e.buf[0] = moves
	if len(moves) == 0 {
		return SearchResult{Depth: cfg.Depth, Nodes: e.nodes, TimeUsed: time.Since(start)}, ErrNoLegalMove
	}

	// 根节点是极大层；beta 恒为 +inf，所以根上不会剪枝
	alpha, beta := -ScoreInf, ScoreInf
	candidates := make([]RootScore, 0, len(moves))
	for _, mv := range moves {
		u := pos.Apply(mv)
		score := e.minimax(pos, 1, alpha, beta)
		pos.Undo(u)

		candidates = append(candidates, RootScore{Move: mv, Score: score})
		if score > alpha {
			alpha = score
		}
	}

	if pos.Hash != rootHash {
		return SearchResult{}, ErrPositionCorrupted
	}

	best := pickBest(candidates, cfg.TieBreak)
	res := SearchResult{
		BestMove:   best.Move,
		Score:      best.Score,
		Captured:   xiangqi.KindNone,
		Candidates: candidates,
		Depth:      cfg.Depth,
		Nodes:      e.nodes,
		TimeUsed:   time.Since(start),
	}
	if to, ok := pos.Target(best.Move); ok {
		if pc, occupied := pos.At(to); occupied {
			res.Captured = pc.Kind
		}
	}
	return res, nil
}

func pickBest(cands []RootScore, tb TieBreak) RootScore {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score || (tb == TieBreakLast && c.Score == best.Score) {
			best = c
		}
	}
	return best
}

// 内部递归：depth 层的局面是父节点走完一步后的局面。
// 偶数层是搜索方（极大），奇数层是对手（极小）。
func (e *Engine) minimax(pos *xiangqi.Position, depth int, alpha, beta int) int {
	e.nodes++

	static := Evaluate(pos, e.side)
	if depth >= e.limit || IsDecisive(static) {
		return static
	}

	maximizing := depth%2 == 0
	toMove := e.side
	if !maximizing {
		toMove = e.side.Opponent()
	}

	// 每层一块缓冲区，下层递归不会覆盖本层正在遍历的走法
	moves := pos.GenerateMoves(toMove, e.buf[depth])
	e.buf[depth] = moves

	if maximizing {
		best := -ScoreInf
		for _, mv := range moves {
			u := pos.Apply(mv)
			score := e.minimax(pos, depth+1, alpha, beta)
			pos.Undo(u)

			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha > beta {
				break
			}
		}
		return best
	}

	best := ScoreInf
	for _, mv := range moves {
		u := pos.Apply(mv)
		score := e.minimax(pos, depth+1, alpha, beta)
		pos.Undo(u)

		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha > beta {
			break
		}
	}
	return best
}

// Nodes 返回最近一次搜索访问的节点数
func (e *Engine) Nodes() int64 {
	return e.nodes
}
