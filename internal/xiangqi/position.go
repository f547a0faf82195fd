package xiangqi

import (
	"errors"
	"fmt"
)

var (
	ErrOffBoard       = errors.New("coordinate off board")
	ErrSquareOccupied = errors.New("square occupied")
	ErrArenaFull      = errors.New("piece arena full")
)

// Position = 棋子竞技场 + 坐标表。
// 竞技场按 PieceID 下标存棋子记录，坐标表按格子存 PieceID，二者始终互逆。
type Position struct {
	pieces  [MaxPieces]Piece
	coords  [MaxPieces]Coord
	alive   [MaxPieces]bool
	squares [NumSquares]PieceID
	n       int // 已分配的身份数，只增不减

	Hash uint64
}

// NewEmptyPosition 返回空棋盘，用于摆局面
func NewEmptyPosition() *Position {
	p := &Position{}
	for i := range p.squares {
		p.squares[i] = NoPiece
	}
	return p
}

// Place 摆一个新子，分配新身份。只用于开局/测试摆局，不参与走子。
func (p *Position) Place(kind Kind, side Side, c Coord) (PieceID, error) {
	if !c.OnBoard() {
		return NoPiece, fmt.Errorf("place %v at %v: %w", kind, c, ErrOffBoard)
	}
	if p.squares[c.index()] != NoPiece {
		return NoPiece, fmt.Errorf("place %v at %v: %w", kind, c, ErrSquareOccupied)
	}
	if p.n >= MaxPieces {
		return NoPiece, ErrArenaFull
	}
	id := PieceID(p.n)
	p.n++
	p.pieces[id] = Piece{ID: id, Kind: kind, Side: side}
	p.coords[id] = c
	p.alive[id] = true
	p.squares[c.index()] = id
	p.Hash ^= pieceHashKey(p.pieces[id], c)
	return id, nil
}

// Remove 把棋子从两张表里同时抹掉（身份作废，不会再被复用）
func (p *Position) Remove(id PieceID) bool {
	if !p.Alive(id) {
		return false
	}
	c := p.coords[id]
	p.Hash ^= pieceHashKey(p.pieces[id], c)
	p.squares[c.index()] = NoPiece
	p.alive[id] = false
	return true
}

func (p *Position) Alive(id PieceID) bool {
	return id >= 0 && int(id) < p.n && p.alive[id]
}

// At 返回格子上的棋子
func (p *Position) At(c Coord) (Piece, bool) {
	if !c.OnBoard() {
		return Piece{ID: NoPiece}, false
	}
	id := p.squares[c.index()]
	if id == NoPiece {
		return Piece{ID: NoPiece}, false
	}
	return p.pieces[id], true
}

func (p *Position) occupied(c Coord) bool {
	return p.squares[c.index()] != NoPiece
}

func (p *Position) CoordOf(id PieceID) (Coord, bool) {
	if !p.Alive(id) {
		return Coord{}, false
	}
	return p.coords[id], true
}

func (p *Position) Piece(id PieceID) (Piece, bool) {
	if !p.Alive(id) {
		return Piece{ID: NoPiece}, false
	}
	return p.pieces[id], true
}

// General 扫描竞技场找 side 的将帅
func (p *Position) General(side Side) (PieceID, bool) {
	for id := 0; id < p.n; id++ {
		if p.alive[id] && p.pieces[id].Kind == General && p.pieces[id].Side == side {
			return PieceID(id), true
		}
	}
	return NoPiece, false
}

// Pieces 按身份号顺序返回 side 的在场棋子；side 为 NoSide 时返回全部
func (p *Position) Pieces(side Side) []Piece {
	out := make([]Piece, 0, MaxPieces)
	for id := 0; id < p.n; id++ {
		if !p.alive[id] {
			continue
		}
		if side != NoSide && p.pieces[id].Side != side {
			continue
		}
		out = append(out, p.pieces[id])
	}
	return out
}

// Each 按身份号顺序遍历在场棋子，不分配内存
func (p *Position) Each(fn func(pc Piece, at Coord)) {
	for id := 0; id < p.n; id++ {
		if p.alive[id] {
			fn(p.pieces[id], p.coords[id])
		}
	}
}

func (p *Position) Count() int {
	cnt := 0
	for id := 0; id < p.n; id++ {
		if p.alive[id] {
			cnt++
		}
	}
	return cnt
}

// Equal 占用的格子相同、每格上的身份相同
func (p *Position) Equal(o *Position) bool {
	if o == nil {
		return false
	}
	for sq := 0; sq < NumSquares; sq++ {
		a, b := p.squares[sq], o.squares[sq]
		if a != b {
			return false
		}
		if a != NoPiece && p.pieces[a] != o.pieces[b] {
			return false
		}
	}
	return true
}

// Clone 值拷贝，搜索不用它，只给调用方做快照
func (p *Position) Clone() *Position {
	np := *p
	return &np
}

// Validate 检查坐标表和竞技场是否互逆
func (p *Position) Validate() error {
	seen := 0
	for sq := 0; sq < NumSquares; sq++ {
		id := p.squares[sq]
		if id == NoPiece {
			continue
		}
		if !p.Alive(id) {
			return fmt.Errorf("square %v holds dead piece %d", coordOf(sq), id)
		}
		if p.coords[id] != coordOf(sq) {
			return fmt.Errorf("square %v holds piece %d recorded at %v", coordOf(sq), id, p.coords[id])
		}
		seen++
	}
	if seen != p.Count() {
		return fmt.Errorf("%d occupied squares but %d live pieces", seen, p.Count())
	}
	return nil
}
