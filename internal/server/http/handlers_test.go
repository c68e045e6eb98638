package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"raichu/internal/cache"
	"raichu/internal/engine"
	"raichu/internal/server/game"
)

func newTestHandler() *Handler {
	return NewHandler(
		game.NewManager(game.NewMemoryStore(), nil),
		cache.NewMemory(time.Minute, 64),
		SearchDefaults{MinDepth: 1, MaxDepth: 3, UseTT: true, BoardSize: 8},
		nil,
	)
}

func post(t *testing.T, srv http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return v
}

func TestPing(t *testing.T) {
	srv := newTestHandler().Router("")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "pong") {
		t.Fatalf("ping: %d %s", rec.Code, rec.Body.String())
	}
}

func TestNewGamePlayState(t *testing.T) {
	srv := newTestHandler().Router("")

	rec := post(t, srv, "/api/new_game", NewGameRequest{N: 8})
	if rec.Code != http.StatusOK {
		t.Fatalf("new_game: %d %s", rec.Code, rec.Body.String())
	}
	g := decode[GameResponse](t, rec)
	if g.GameID == "" || g.ToMove != "w" || len(g.LegalMoves) != 22 || g.Status != game.StatusOngoing {
		t.Fatalf("bad new game: %+v", g)
	}

	mv := g.LegalMoves[0]
	rec = post(t, srv, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: mv.From, To: mv.To}})
	if rec.Code != http.StatusOK {
		t.Fatalf("play: %d %s", rec.Code, rec.Body.String())
	}
	played := decode[GameResponse](t, rec)
	if played.ToMove != "b" || len(played.History) != 1 {
		t.Fatalf("bad play: %+v", played)
	}

	rec = post(t, srv, "/api/state", StateRequest{GameID: g.GameID})
	state := decode[GameResponse](t, rec)
	if state.Position != played.Position {
		t.Fatalf("state %s != played %s", state.Position, played.Position)
	}

	rec = post(t, srv, "/api/play", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 0, To: 63}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("illegal move: %d", rec.Code)
	}
	rec = post(t, srv, "/api/state", StateRequest{GameID: "missing"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing game: %d", rec.Code)
	}
	rec = post(t, srv, "/api/new_game", NewGameRequest{N: 5})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("odd size: %d", rec.Code)
	}
}

func TestAiMoveValidatesAndCaches(t *testing.T) {
	srv := newTestHandler().Router("")

	for _, req := range []AiMoveRequest{
		{PositionRequest: PositionRequest{N: 3, Position: "w...b...", ToMove: "w"}},
		{PositionRequest: PositionRequest{N: 3, Position: "w...x....", ToMove: "w"}},
		{PositionRequest: PositionRequest{N: 3, Position: "w...b....", ToMove: "white"}},
	} {
		if rec := post(t, srv, "/api/ai_move", req); rec.Code != http.StatusBadRequest {
			t.Fatalf("%+v: got %d", req, rec.Code)
		}
	}

	req := AiMoveRequest{PositionRequest: PositionRequest{N: 3, Position: "w...b....", ToMove: "w"}, MaxDepth: 3}
	first := decode[AiMoveResponse](t, post(t, srv, "/api/ai_move", req))
	if first.Position != "........@" || first.Status != game.StatusWhiteWon || first.Cached {
		t.Fatalf("first: %+v", first)
	}
	if first.BestMove != (MoveDTO{From: 0, To: 8, Capture: 4}) {
		t.Fatalf("best move: %+v", first.BestMove)
	}
	second := decode[AiMoveResponse](t, post(t, srv, "/api/ai_move", req))
	if !second.Cached || second.BestMove != first.BestMove || second.Status != game.StatusWhiteWon {
		t.Fatalf("second: %+v", second)
	}
}

func TestAiMoveNoMoves(t *testing.T) {
	srv := newTestHandler().Router("")
	req := AiMoveRequest{PositionRequest: PositionRequest{N: 3, Position: "w...B....", ToMove: "w"}}
	resp := decode[AiMoveResponse](t, post(t, srv, "/api/ai_move", req))
	if resp.Status != game.StatusNoMoves || resp.BestMove.From != -1 {
		t.Fatalf("got %+v", resp)
	}
}

func TestSuccessors(t *testing.T) {
	srv := newTestHandler().Router("")
	rec := post(t, srv, "/api/successors", PositionRequest{N: 3, Position: "w...b....", ToMove: "w"})
	resp := decode[SuccessorsResponse](t, rec)
	if len(resp.Successors) != 1 || resp.Successors[0].Position != "........@" || resp.Terminal {
		t.Fatalf("got %+v", resp)
	}
}

func TestAnalyzeStreamsDepths(t *testing.T) {
	ts := httptest.NewServer(newTestHandler().Router(""))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") +
		"/api/ws/analyze?n=8&to_move=w&max_depth=3&position=" +
		"........W.W.W.W..w.w.w.w................b.b.b.b..B.B.B.B........"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var depths []int
	for {
		var msg AnalysisMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Done {
			break
		}
		depths = append(depths, msg.Depth)
	}
	if len(depths) != 3 || depths[0] != 1 || depths[2] != 3 {
		t.Fatalf("depths: %v", depths)
	}
}

func TestAnalyzeRejectsBadBoard(t *testing.T) {
	srv := newTestHandler().Router("")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ws/analyze?n=3&to_move=w&position=bad", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d", rec.Code)
	}
}

func TestRequestedDepthIsCappedByConfig(t *testing.T) {
	h := newTestHandler()
	if got := h.searchConfig(50).MaxDepth; got != 3 {
		t.Fatalf("max_depth 50: got %d", got)
	}
	if got := h.searchConfig(2).MaxDepth; got != 2 {
		t.Fatalf("max_depth 2: got %d", got)
	}
	if got := h.searchConfig(0).MaxDepth; got != 3 {
		t.Fatalf("max_depth 0: got %d", got)
	}

	bare := NewHandler(game.NewManager(game.NewMemoryStore(), nil), nil, SearchDefaults{}, nil)
	if got := bare.searchConfig(100).MaxDepth; got != engine.DefaultMaxDepth {
		t.Fatalf("unconfigured handler: got %d", got)
	}

	srv := h.Router("")
	req := AiMoveRequest{
		PositionRequest: PositionRequest{
			N:        8,
			Position: "........W.W.W.W..w.w.w.w................b.b.b.b..B.B.B.B........",
			ToMove:   "w",
		},
		MaxDepth: 40,
	}
	resp := decode[AiMoveResponse](t, post(t, srv, "/api/ai_move", req))
	if resp.Depth != 3 {
		t.Fatalf("searched to depth %d", resp.Depth)
	}
}
