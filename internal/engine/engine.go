package engine

import (
	"errors"

	"xiangqi/internal/xiangqi"
)

const (
	MinDepth = 1
	MaxDepth = 3
)

var (
	ErrNoLegalMove       = errors.New("no legal move")
	ErrInvalidDepth      = errors.New("search depth out of range")
	ErrPositionCorrupted = errors.New("position not restored after search")
)

// Engine 只持有搜索期间的临时状态：每层复用的走法缓冲区和节点计数。
// 一个 Engine 同一时间只能跑一个搜索，不可重入。
type Engine struct {
	nodes int64
	buf   [MaxDepth + 1][]xiangqi.Move

	side  xiangqi.Side // 根节点走子方，也是估值视角
	limit int
}

func NewEngine() *Engine {
	e := &Engine{}
	for i := range e.buf {
		e.buf[i] = make([]xiangqi.Move, 0, 128)
	}
	return e
}
