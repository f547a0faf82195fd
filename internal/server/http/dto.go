package httpserver

import (
	"xiangqi/internal/engine"
	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

// NewGame 请求
type NewGameRequest struct {
	AISide string `json:"ai_side"` // "red" / "black"，空则 AI 执黑
}

// State 请求：前端刷新时用 game_id 来要当前盘面
type StateRequest struct {
	GameID string `json:"game_id"`
}

// Play 请求，坐标用 "b7" 这种记法
type PlayRequest struct {
	GameID string `json:"game_id"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// AiMoveRequest 请求让 AI 为当前局面走一步
type AiMoveRequest struct {
	GameID string `json:"game_id"`
	Depth  int    `json:"depth"` // 0 用服务端默认深度
}

// 前端用的招法结构
type MoveDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StateResponse 是所有接口共用的盘面快照
type StateResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"` // 局面图串
	ToMove     string    `json:"to_move"`
	AISide     string    `json:"ai_side"`
	LegalMoves []MoveDTO `json:"legal_moves"` // 轮到的一方所有可走棋
	Status     string    `json:"status"`
	MoveCount  int       `json:"move_count"`
	History    []MoveDTO `json:"history"`
}

type NewGameResponse struct {
	StateResponse
}

type PlayResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Captured string `json:"captured,omitempty"`
	StateResponse
}

type AiMoveResponse struct {
	BestMove MoveDTO `json:"best_move"`
	Captured string  `json:"captured,omitempty"`
	Score    int     `json:"score"`
	Depth    int     `json:"depth"`
	Nodes    int64   `json:"nodes"`
	TimeMs   int64   `json:"time_ms"`
	StateResponse
}

func parseSide(s string) (xiangqi.Side, bool) {
	switch s {
	case "", "black":
		return xiangqi.Black, true
	case "red":
		return xiangqi.Red, true
	}
	return xiangqi.NoSide, false
}

func kindName(k xiangqi.Kind) string {
	if k == xiangqi.KindNone {
		return ""
	}
	return k.String()
}

func moveToDTO(pos *xiangqi.Position, m xiangqi.Move) MoveDTO {
	from, _ := pos.CoordOf(m.Piece)
	to, _ := pos.Target(m)
	return MoveDTO{From: from.String(), To: to.String()}
}

func movesToDTO(pos *xiangqi.Position, ms []xiangqi.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(pos, m)
	}
	return out
}

func snapshot(id string, g *game.Game) StateResponse {
	pos := g.Position()
	st := g.Status()
	var legal []xiangqi.Move
	if !st.Terminal() {
		legal = pos.LegalMoves(g.SideToMove())
	}
	hist := g.History()
	played := make([]MoveDTO, len(hist))
	for i, r := range hist {
		played[i] = MoveDTO{From: r.From.String(), To: r.To.String()}
	}
	return StateResponse{
		GameID:     id,
		Position:   pos.Encode(),
		ToMove:     g.SideToMove().String(),
		AISide:     g.AISide().String(),
		LegalMoves: movesToDTO(pos, legal),
		Status:     st.String(),
		MoveCount:  g.MoveCount(),
		History:    played,
	}
}

func searchToDTO(res game.Result, sr engine.SearchResult) (MoveDTO, string) {
	return MoveDTO{From: res.From.String(), To: res.To.String()}, kindName(sr.Captured)
}
