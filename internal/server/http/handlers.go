package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"xiangqi/internal/engine"
	"xiangqi/internal/game"
	"xiangqi/internal/server/store"
	"xiangqi/internal/xiangqi"
)

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games        *store.Manager
	defaultDepth int
}

func NewHandler(games *store.Manager, defaultDepth int) *Handler {
	if defaultDepth < engine.MinDepth || defaultDepth > engine.MaxDepth {
		defaultDepth = engine.MaxDepth
	}
	return &Handler{games: games, defaultDepth: defaultDepth}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/state":
		h.handleState(w, r)
	case "/api/play":
		h.handlePlay(w, r)
	case "/api/ai_move":
		h.handleAiMove(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	side, ok := parseSide(req.AISide)
	if !ok {
		http.Error(w, "ai_side must be red or black", http.StatusBadRequest)
		return
	}
	e, err := h.games.NewGame(side)
	if err != nil {
		writeError(w, err)
		return
	}

	var resp NewGameResponse
	e.With(func(g *game.Game) error {
		resp.StateResponse = snapshot(e.ID, g)
		return nil
	})
	log.Printf("new game %s, ai plays %v", e.ID, side)
	writeJSON(w, resp)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	e, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	var resp StateResponse
	e.With(func(g *game.Game) error {
		resp = snapshot(e.ID, g)
		return nil
	})
	writeJSON(w, resp)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	from, err := xiangqi.ParseCoord(req.From)
	if err != nil {
		http.Error(w, "bad from: "+err.Error(), http.StatusBadRequest)
		return
	}
	to, err := xiangqi.ParseCoord(req.To)
	if err != nil {
		http.Error(w, "bad to: "+err.Error(), http.StatusBadRequest)
		return
	}
	e, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}

	var resp PlayResponse
	err = e.With(func(g *game.Game) error {
		mv, ok := g.Position().MoveBetween(from, to)
		if !ok {
			return game.ErrNoSuchPiece
		}
		// 只能走人类一方的棋
		res, err := g.RequestMove(g.HumanSide(), mv.Piece, int(mv.DFile), int(mv.DRank))
		if err != nil {
			return err
		}
		resp.Accepted = res.Accepted
		if !res.Accepted {
			resp.Reason = res.Reason.String()
		}
		resp.Captured = kindName(res.Captured)
		resp.StateResponse = snapshot(e.ID, g)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	depth := req.Depth
	if depth == 0 {
		depth = h.defaultDepth
	}
	e, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}

	var resp AiMoveResponse
	err = e.With(func(g *game.Game) error {
		if g.SideToMove() != g.AISide() {
			return game.ErrNotYourTurn
		}
		// 搜索在锁内完成，原地走子/撤销期间没有别的请求能读到局面
		res, sr, err := g.RequestAutomatedMove(depth)
		if err != nil {
			return err
		}
		resp.BestMove, resp.Captured = searchToDTO(res, sr)
		resp.Score = sr.Score
		resp.Depth = sr.Depth
		resp.Nodes = sr.Nodes
		resp.TimeMs = sr.TimeUsed.Milliseconds()
		resp.StateResponse = snapshot(e.ID, g)
		log.Printf("game %s: ai %s-%s score=%d nodes=%d time=%v",
			e.ID, resp.BestMove.From, resp.BestMove.To, sr.Score, sr.Nodes, sr.TimeUsed)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

// writeError 把领域错误翻译成状态码
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		code = http.StatusNotFound
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, engine.ErrNoLegalMove):
		code = http.StatusConflict
	case errors.Is(err, game.ErrNoSuchPiece),
		errors.Is(err, game.ErrNotYourPiece),
		errors.Is(err, game.ErrInvalidSide),
		errors.Is(err, engine.ErrInvalidDepth):
		code = http.StatusBadRequest
	default:
		log.Println("internal error:", err)
	}
	http.Error(w, err.Error(), code)
}
