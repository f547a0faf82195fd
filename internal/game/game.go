package game

import (
	"errors"
	"fmt"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrNoSuchPiece  = errors.New("no such piece")
	ErrNotYourPiece = errors.New("piece belongs to the other side")
	ErrInvalidSide  = errors.New("invalid side")
)

// Result 是一次走子请求的结果。被拒不是错误：Accepted=false 且 Reason 说明原因，局面不变。
type Result struct {
	Accepted bool
	Reason   xiangqi.Reason
	Side     xiangqi.Side
	Move     xiangqi.Move
	From     xiangqi.Coord
	To       xiangqi.Coord
	Captured xiangqi.Kind
}

func (r Result) String() string {
	if !r.Accepted {
		return "rejected: " + r.Reason.String()
	}
	s := fmt.Sprintf("%v %v-%v", r.Side, r.From, r.To)
	if r.Captured != xiangqi.KindNone {
		s += " x" + r.Captured.String()
	}
	return s
}

// Game 持有唯一的活动局面。非并发安全，调用方自己加锁。
type Game struct {
	pos    *xiangqi.Position
	eng    *engine.Engine
	aiSide xiangqi.Side
	toMove xiangqi.Side
	moves  int

	// 开局时扫描一次，之后只看身份是否还在场
	generals [2]xiangqi.PieceID

	history []Result
}

// New 开一局新棋，红先
func New(aiSide xiangqi.Side) (*Game, error) {
	g := &Game{eng: engine.NewEngine()}
	if err := g.Reset(aiSide); err != nil {
		return nil, err
	}
	return g, nil
}

// NewFromPosition 从摆好的局面开始，给测试和调试用
func NewFromPosition(pos *xiangqi.Position, toMove, aiSide xiangqi.Side) (*Game, error) {
	if aiSide != xiangqi.Red && aiSide != xiangqi.Black {
		return nil, fmt.Errorf("ai side %v: %w", aiSide, ErrInvalidSide)
	}
	if toMove != xiangqi.Red && toMove != xiangqi.Black {
		return nil, fmt.Errorf("side to move %v: %w", toMove, ErrInvalidSide)
	}
	g := &Game{eng: engine.NewEngine()}
	g.start(pos, toMove, aiSide)
	return g, nil
}

// Reset 复位到开局，计数清零
func (g *Game) Reset(aiSide xiangqi.Side) error {
	if aiSide != xiangqi.Red && aiSide != xiangqi.Black {
		return fmt.Errorf("ai side %v: %w", aiSide, ErrInvalidSide)
	}
	g.start(xiangqi.NewStartPosition(), xiangqi.Red, aiSide)
	return nil
}

func (g *Game) start(pos *xiangqi.Position, toMove, aiSide xiangqi.Side) {
	g.pos = pos
	g.aiSide = aiSide
	g.toMove = toMove
	g.moves = 0
	g.history = g.history[:0]
	for _, s := range []xiangqi.Side{xiangqi.Red, xiangqi.Black} {
		id, _ := pos.General(s)
		g.generals[s] = id
	}
}

// RequestMove 人类（或任一方）请求走子：先验证，通过才落子
func (g *Game) RequestMove(side xiangqi.Side, id xiangqi.PieceID, df, dr int) (Result, error) {
	if g.Status().Terminal() {
		return Result{}, ErrGameOver
	}
	if side != g.toMove {
		return Result{}, fmt.Errorf("%v to move: %w", g.toMove, ErrNotYourTurn)
	}
	pc, ok := g.pos.Piece(id)
	if !ok {
		return Result{}, fmt.Errorf("piece %d: %w", id, ErrNoSuchPiece)
	}
	if pc.Side != side {
		return Result{}, fmt.Errorf("piece %d: %w", id, ErrNotYourPiece)
	}

	m := xiangqi.NewMove(id, df, dr)
	if reason := g.pos.CheckMove(id, df, dr); reason != xiangqi.ReasonNone {
		return Result{Reason: reason, Side: side, Move: m}, nil
	}
	return g.play(m), nil
}

// RequestAutomatedMove 为轮到的一方搜索并落子
func (g *Game) RequestAutomatedMove(depth int) (Result, engine.SearchResult, error) {
	if st := g.Status(); st.Terminal() && st != StatusStalemate {
		return Result{}, engine.SearchResult{}, ErrGameOver
	}
	sr, err := g.eng.Search(g.pos, g.toMove, engine.SearchConfig{Depth: depth})
	if err != nil {
		return Result{}, sr, err
	}
	// 与人类走子走同一条判定
	if reason := g.pos.CheckMove(sr.BestMove.Piece, int(sr.BestMove.DFile), int(sr.BestMove.DRank)); reason != xiangqi.ReasonNone {
		return Result{}, sr, fmt.Errorf("search returned %v move: %w", reason, engine.ErrPositionCorrupted)
	}
	return g.play(sr.BestMove), sr, nil
}

func (g *Game) play(m xiangqi.Move) Result {
	side := g.toMove
	u := g.pos.Apply(m)
	to, _ := g.pos.CoordOf(m.Piece)
	res := Result{
		Accepted: true,
		Reason:   xiangqi.ReasonNone,
		Side:     side,
		Move:     m,
		From:     u.From,
		To:       to,
		Captured: u.CapturedKind(),
	}
	g.moves++
	g.toMove = side.Opponent()
	g.history = append(g.history, res)
	return res
}

// Status 每次按需重算
func (g *Game) Status() Status {
	if !g.pos.Alive(g.generals[xiangqi.Red]) {
		return StatusBlackWins
	}
	if !g.pos.Alive(g.generals[xiangqi.Black]) {
		return StatusRedWins
	}
	if g.moves >= DrawMoveLimit {
		return StatusDraw
	}
	if !g.pos.HasLegalMove(g.toMove) {
		return StatusStalemate
	}
	return StatusInProgress
}

func (g *Game) OutcomeFor(side xiangqi.Side) Outcome {
	return outcomeOf(g.Status(), side)
}

func (g *Game) Position() *xiangqi.Position { return g.pos }
func (g *Game) SideToMove() xiangqi.Side    { return g.toMove }
func (g *Game) AISide() xiangqi.Side        { return g.aiSide }
func (g *Game) HumanSide() xiangqi.Side     { return g.aiSide.Opponent() }
func (g *Game) MoveCount() int              { return g.moves }

// History 返回已走棋步的副本
func (g *Game) History() []Result {
	out := make([]Result, len(g.history))
	copy(out, g.history)
	return out
}
