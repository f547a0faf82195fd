package game

import "xiangqi/internal/xiangqi"

// DrawMoveLimit 双方合计走满这么多步判和
const DrawMoveLimit = 50

type Status int8

const (
	StatusInProgress Status = iota
	StatusRedWins
	StatusBlackWins
	StatusDraw
	StatusStalemate // 轮到的一方无子可动
)

var statusNames = [...]string{
	StatusInProgress: "in_progress",
	StatusRedWins:    "red_wins",
	StatusBlackWins:  "black_wins",
	StatusDraw:       "draw",
	StatusStalemate:  "stalemate",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

func (s Status) Terminal() bool {
	return s != StatusInProgress
}

// Winner 只有一方将帅被吃才有赢家
func (s Status) Winner() (xiangqi.Side, bool) {
	switch s {
	case StatusRedWins:
		return xiangqi.Red, true
	case StatusBlackWins:
		return xiangqi.Black, true
	}
	return xiangqi.NoSide, false
}

// Outcome 是某一方视角下的结果
type Outcome int8

const (
	OutcomeInProgress Outcome = iota
	OutcomeOwnWins
	OutcomeOwnLoses
	OutcomeDraw
	OutcomeStalemate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOwnWins:
		return "own_wins"
	case OutcomeOwnLoses:
		return "own_loses"
	case OutcomeDraw:
		return "draw"
	case OutcomeStalemate:
		return "stalemate"
	}
	return "in_progress"
}

func outcomeOf(s Status, side xiangqi.Side) Outcome {
	if w, ok := s.Winner(); ok {
		if w == side {
			return OutcomeOwnWins
		}
		return OutcomeOwnLoses
	}
	switch s {
	case StatusDraw:
		return OutcomeDraw
	case StatusStalemate:
		return OutcomeStalemate
	}
	return OutcomeInProgress
}
