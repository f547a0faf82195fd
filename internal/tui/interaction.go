package tui

import (
	"fmt"

	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

// Interaction 是界面层的选子状态：光标在哪、选中了哪个子、提示信息。
// 规则判断全部交给 game，这里只负责把两次回车翻译成一次走子请求。
type Interaction struct {
	Cursor   xiangqi.Coord
	Selected xiangqi.PieceID
	Message  string
}

func NewInteraction() *Interaction {
	return &Interaction{Cursor: xiangqi.C(4, 9), Selected: xiangqi.NoPiece}
}

func (it *Interaction) HasSelection() bool {
	return it.Selected != xiangqi.NoPiece
}

func (it *Interaction) Clear() {
	it.Selected = xiangqi.NoPiece
}

// MoveCursor 按棋盘坐标移动光标，出界就停在边上
func (it *Interaction) MoveCursor(df, dr int) {
	c := it.Cursor.Add(df, dr)
	if c.OnBoard() {
		it.Cursor = c
	}
}

// Activate 在光标处按下回车：
// 没选子时选中光标处的己方棋子；已选子时把光标处当落点提交走子。
// 返回的 bool 表示是否真的落了子。
func (it *Interaction) Activate(g *game.Game) (game.Result, bool, error) {
	if st := g.Status(); st.Terminal() {
		it.Clear()
		it.Message = "game over: " + st.String()
		return game.Result{}, false, nil
	}
	human := g.HumanSide()
	if g.SideToMove() != human {
		it.Message = "wait for the engine"
		return game.Result{}, false, nil
	}

	pos := g.Position()
	pc, occupied := pos.At(it.Cursor)

	// 点自己的子：选中或换选
	if occupied && pc.Side == human {
		if it.Selected == pc.ID {
			it.Clear()
			it.Message = ""
			return game.Result{}, false, nil
		}
		it.Selected = pc.ID
		it.Message = fmt.Sprintf("selected %v at %v", pc.Kind, it.Cursor)
		return game.Result{}, false, nil
	}
	if !it.HasSelection() {
		it.Message = "select one of your pieces"
		return game.Result{}, false, nil
	}

	from, ok := pos.CoordOf(it.Selected)
	if !ok {
		it.Clear()
		return game.Result{}, false, nil
	}
	df := int(it.Cursor.File - from.File)
	dr := int(it.Cursor.Rank - from.Rank)
	res, err := g.RequestMove(human, it.Selected, df, dr)
	if err != nil {
		it.Clear()
		it.Message = err.Error()
		return res, false, err
	}
	if !res.Accepted {
		it.Message = "illegal: " + res.Reason.String()
		return res, false, nil
	}
	it.Clear()
	it.Message = res.String()
	return res, true, nil
}
