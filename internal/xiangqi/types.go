package xiangqi

import "math"

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) Opponent() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

type Kind int8

const (
	KindNone Kind = iota
	General       // 帅 / 将
	Chariot       // 车
	Horse         // 马
	Cannon        // 炮
	Soldier       // 兵 / 卒
	Advisor       // 仕 / 士
	Elephant      // 相 / 象
)

const numKinds = 8 // 含 KindNone

var kindNames = [numKinds]string{"none", "general", "chariot", "horse", "cannon", "soldier", "advisor", "elephant"}

func (k Kind) String() string {
	if k < 0 || int(k) >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// PieceID 是棋子在整局中的稳定身份，被吃后不再复用
type PieceID int8

const NoPiece PieceID = -1

// MaxPieces 开局双方共 32 子，竞技场容量就是 32
const MaxPieces = 32

type Piece struct {
	ID   PieceID
	Kind Kind
	Side Side
}

// Move 只在生成/搜索时短暂存在：谁走、横移多少、纵移多少
type Move struct {
	Piece PieceID `json:"piece"`
	DFile int8    `json:"dfile"`
	DRank int8    `json:"drank"`
}

// NewMove 从 int 增量构造 Move，超出 int8 的增量夹到边界（仍然出界）
func NewMove(id PieceID, df, dr int) Move {
	return Move{Piece: id, DFile: clampInt8(df), DRank: clampInt8(dr)}
}

func clampInt8(v int) int8 {
	if v > math.MaxInt8 {
		return math.MaxInt8
	}
	if v < math.MinInt8 {
		return math.MinInt8
	}
	return int8(v)
}

// Undo 记录一步棋的全部可逆信息，Apply 产生，Undo 消费
type Undo struct {
	Move       Move
	From       Coord
	Mover      Piece
	Captured   Piece // Captured.ID == NoPiece 表示没吃子
	CapturedAt Coord
	prevHash   uint64
}
