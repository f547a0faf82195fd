package engine

import (
	"xiangqi/internal/xiangqi"
)

const (
	// 当成正负无穷：吃掉对方将帅为 +ScoreInf，自己将帅没了为 -ScoreInf
	ScoreInf = 1_000_000_000

	materialScale = 8
)

func IsDecisive(score int) bool {
	return score >= ScoreInf || score <= -ScoreInf
}

// 只有车马炮兵计“前进分”
var advances = map[xiangqi.Kind]bool{
	xiangqi.Chariot: true,
	xiangqi.Horse:   true,
	xiangqi.Cannon:  true,
	xiangqi.Soldier: true,
}

// Evaluate 从 perspective 视角的静态评估：正数 perspective 好。
// 子力 = 权重×8；前进分 = 权重×离开本方底线的行数。
func Evaluate(pos *xiangqi.Position, perspective xiangqi.Side) int {
	if _, ok := pos.General(perspective.Opponent()); !ok {
		return ScoreInf
	}
	if _, ok := pos.General(perspective); !ok {
		return -ScoreInf
	}

	material, advance := 0, 0
	pos.Each(func(pc xiangqi.Piece, at xiangqi.Coord) {
		w := xiangqi.Weight(pc.Kind)
		m := w * materialScale
		a := 0
		if advances[pc.Kind] {
			a = w * xiangqi.Advance(pc.Side, int(at.Rank))
		}
		if pc.Side == perspective {
			material += m
			advance += a
		} else {
			material -= m
			advance -= a
		}
	})
	return material + advance
}
