package xiangqi

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

const (
	Files      = 9
	Ranks      = 10
	NumSquares = Files * Ranks

	// 河界在第 4、5 行之间
	RiverLow  = 4
	RiverHigh = 5
)

type Coord struct {
	File int8 `json:"file"`
	Rank int8 `json:"rank"`
}

func C(file, rank int) Coord { return Coord{File: int8(file), Rank: int8(rank)} }

func (c Coord) OnBoard() bool {
	return c.File >= 0 && c.File < Files && c.Rank >= 0 && c.Rank < Ranks
}

func (c Coord) Add(df, dr int) Coord {
	return Coord{File: c.File + int8(df), Rank: c.Rank + int8(dr)}
}

func (c Coord) index() int { return int(c.Rank)*Files + int(c.File) }

func coordOf(sq int) Coord { return Coord{File: int8(sq % Files), Rank: int8(sq / Files)} }

// 坐标记法：列 a-i，行 0-9
func (c Coord) String() string {
	if !c.OnBoard() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'a'+rune(c.File), c.Rank)
}

func ParseCoord(s string) (Coord, error) {
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("coord %q: %w", s, ErrOffBoard)
	}
	c := Coord{File: int8(s[0] - 'a'), Rank: int8(s[1] - '0')}
	if !c.OnBoard() {
		return Coord{}, fmt.Errorf("coord %q: %w", s, ErrOffBoard)
	}
	return c, nil
}

// 兵的前进方向：黑在上方向下走(+1)，红在下方向上走(-1)
func forward(side Side) int {
	switch side {
	case Red:
		return -1
	case Black:
		return +1
	}
	return 0
}

// 底线：算“前进了几行”的起点
func baseline(side Side) int {
	if side == Red {
		return Ranks - 1
	}
	return 0
}

// Advance 返回 rank 相对 side 底线前进的行数
func Advance(side Side, rank int) int {
	return abs(rank - baseline(side))
}

// 是否已过河
func crossedRiver(side Side, rank int) bool {
	switch side {
	case Red:
		return rank <= RiverLow
	case Black:
		return rank >= RiverHigh
	}
	return false
}

// 是否在本方九宫
func inPalace(side Side, c Coord) bool {
	if c.File < 3 || c.File > 5 {
		return false
	}
	switch side {
	case Black:
		return c.Rank >= 0 && c.Rank <= 2
	case Red:
		return c.Rank >= Ranks-3 && c.Rank <= Ranks-1
	}
	return false
}

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func sign[T constraints.Signed](v T) T {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// 开局：第 0 行黑方底线，第 9 行红方底线
const initialDiagram = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR"

// NewStartPosition 按标准开局摆子；身份号按行优先扫描顺序分配
func NewStartPosition() *Position {
	pos, err := Decode(initialDiagram)
	if err != nil {
		panic("initial diagram: " + err.Error())
	}
	return pos
}
