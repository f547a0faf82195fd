package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"xiangqi/internal/server/store"
)

func newTestServer() http.Handler {
	return NewRouter(store.NewManager(), Options{DefaultDepth: 1})
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return v
}

func startGame(t *testing.T, h http.Handler, aiSide string) NewGameResponse {
	t.Helper()
	rr := post(t, h, "/api/new_game", `{"ai_side":"`+aiSide+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("new_game: status %d body %q", rr.Code, rr.Body.String())
	}
	return decode[NewGameResponse](t, rr)
}

func TestNewGameAndState(t *testing.T) {
	h := newTestServer()
	ng := startGame(t, h, "black")
	if ng.GameID == "" || ng.ToMove != "red" || ng.AISide != "black" {
		t.Fatalf("new game = %+v", ng.StateResponse)
	}
	if len(ng.LegalMoves) != 44 || ng.Status != "in_progress" {
		t.Fatalf("legal moves %d status %q", len(ng.LegalMoves), ng.Status)
	}
	if ng.Position != "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR" {
		t.Fatalf("position = %q", ng.Position)
	}

	rr := post(t, h, "/api/state", `{"game_id":"`+ng.GameID+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("state: status %d", rr.Code)
	}
	st := decode[StateResponse](t, rr)
	if st.Position != ng.Position || st.MoveCount != 0 {
		t.Fatalf("state = %+v", st)
	}

	if rr := post(t, h, "/api/state", `{"game_id":"nope"}`); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown game: status %d", rr.Code)
	}
	if rr := post(t, h, "/api/new_game", `{"ai_side":"green"}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad side: status %d", rr.Code)
	}
}

func TestPlay(t *testing.T) {
	h := newTestServer()
	ng := startGame(t, h, "black")

	tests := []struct {
		name     string
		from, to string
		code     int
		accepted bool
		reason   string
		captured string
	}{
		{"blocked chariot", "a9", "a5", http.StatusOK, false, "obstruction_violation", ""},
		{"ai piece", "b0", "c2", http.StatusBadRequest, false, "", ""},
		{"empty square", "e5", "e4", http.StatusBadRequest, false, "", ""},
		{"bad coord", "z9", "a5", http.StatusBadRequest, false, "", ""},
		{"cannon takes horse", "b7", "b0", http.StatusOK, true, "", "horse"},
		{"not our turn", "h7", "h3", http.StatusConflict, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, h, "/api/play", `{"game_id":"`+ng.GameID+`","from":"`+tt.from+`","to":"`+tt.to+`"}`)
			if rr.Code != tt.code {
				t.Fatalf("status %d, want %d (%q)", rr.Code, tt.code, rr.Body.String())
			}
			if tt.code != http.StatusOK {
				return
			}
			resp := decode[PlayResponse](t, rr)
			if resp.Accepted != tt.accepted || resp.Reason != tt.reason || resp.Captured != tt.captured {
				t.Fatalf("resp = accepted %v reason %q captured %q", resp.Accepted, resp.Reason, resp.Captured)
			}
		})
	}
}

func TestAiMove(t *testing.T) {
	h := newTestServer()
	ng := startGame(t, h, "black")

	// 还没轮到 AI
	if rr := post(t, h, "/api/ai_move", `{"game_id":"`+ng.GameID+`"}`); rr.Code != http.StatusConflict {
		t.Fatalf("ai before its turn: status %d", rr.Code)
	}
	if rr := post(t, h, "/api/play", `{"game_id":"`+ng.GameID+`","from":"b9","to":"c7"}`); rr.Code != http.StatusOK {
		t.Fatalf("play: status %d %q", rr.Code, rr.Body.String())
	}
	if rr := post(t, h, "/api/ai_move", `{"game_id":"`+ng.GameID+`","depth":9}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad depth: status %d", rr.Code)
	}

	rr := post(t, h, "/api/ai_move", `{"game_id":"`+ng.GameID+`","depth":2}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("ai_move: status %d %q", rr.Code, rr.Body.String())
	}
	resp := decode[AiMoveResponse](t, rr)
	if resp.BestMove.From == "" || resp.Depth != 2 || resp.Nodes == 0 {
		t.Fatalf("ai move = %+v", resp)
	}
	if resp.ToMove != "red" || resp.MoveCount != 2 || len(resp.History) != 2 {
		t.Fatalf("state after ai move = %+v", resp.StateResponse)
	}
	if resp.History[1] != resp.BestMove {
		t.Fatalf("history %+v does not end with %+v", resp.History, resp.BestMove)
	}
}

func TestMethodAndRoutes(t *testing.T) {
	h := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/state: status %d", rr.Code)
	}

	if rr := post(t, h, "/api/unknown", `{}`); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown route: status %d", rr.Code)
	}
	if rr := post(t, h, "/api/play", `{not json`); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/web/" {
		t.Fatalf("root redirect: %d %q", rr.Code, rr.Header().Get("Location"))
	}
}
