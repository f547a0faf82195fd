package xiangqi

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrInvalidDiagram = errors.New("invalid diagram")

var letterToKind = map[rune]Kind{
	'k': General,
	'r': Chariot,
	'n': Horse,
	'c': Cannon,
	'p': Soldier,
	'a': Advisor,
	'b': Elephant,
}

var kindToLetter = func() [numKinds]rune {
	var out [numKinds]rune
	for r, k := range letterToKind {
		out[k] = r
	}
	return out
}()

func pieceToChar(pc Piece) rune {
	ch := kindToLetter[pc.Kind]
	if ch == 0 {
		return '?'
	}
	if pc.Side == Red {
		return unicode.ToUpper(ch)
	}
	return ch
}

// Encode 简单 FEN-like：10 行用“/”隔开（第 0 行在前），空位用数字压缩；大写红，小写黑
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Ranks; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < Files; f++ {
			pc, ok := p.At(C(f, r))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// Decode 解析 Encode 的输出；身份号按行优先扫描顺序分配。
// 允许末尾跟一个空格分隔的字段（如 " w"），这里忽略。
func Decode(diagram string) (*Position, error) {
	board, _, _ := strings.Cut(strings.TrimSpace(diagram), " ")
	rows := strings.Split(board, "/")
	if len(rows) != Ranks {
		return nil, fmt.Errorf("%w: %d ranks", ErrInvalidDiagram, len(rows))
	}
	pos := NewEmptyPosition()
	for r, row := range rows {
		f := 0
		for _, ch := range row {
			if f >= Files {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidDiagram, r)
			}
			if ch >= '1' && ch <= '9' {
				f += int(ch - '0')
				continue
			}
			if ch == '.' {
				f++
				continue
			}
			kind, ok := letterToKind[unicode.ToLower(ch)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece letter %q", ErrInvalidDiagram, ch)
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = Red
			}
			if _, err := pos.Place(kind, side, C(f, r)); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidDiagram, err)
			}
			f++
		}
		if f != Files {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidDiagram, r, f)
		}
	}
	return pos, nil
}

// String 多行棋盘图，调试用
func (p *Position) String() string {
	var sb strings.Builder
	for r := 0; r < Ranks; r++ {
		fmt.Fprintf(&sb, "%d ", r)
		for f := 0; f < Files; f++ {
			pc, ok := p.At(C(f, r))
			if ok {
				sb.WriteRune(pieceToChar(pc))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
		if r == RiverLow {
			sb.WriteString("  ~~~~~~~~~\n")
		}
	}
	sb.WriteString("  abcdefghi\n")
	return sb.String()
}
