package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"raichu/internal/cache"
	"raichu/internal/engine"
	"raichu/internal/raichu"
	"raichu/internal/server/game"
)

// SearchDefaults 请求里没给时用的搜索参数
type SearchDefaults struct {
	MinDepth  int
	MaxDepth  int
	TimeLimit time.Duration
	Parallel  bool
	Workers   int
	UseTT     bool
	BoardSize int
}

type Handler struct {
	games    *game.Manager
	cache    cache.ResultCache
	defaults SearchDefaults
	log      *zap.SugaredLogger

	// Engine 不是并发安全的，每个请求借一个
	engines sync.Pool
}

func NewHandler(games *game.Manager, rc cache.ResultCache, defaults SearchDefaults, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if rc == nil {
		rc = cache.NewMemory(0, cache.DefaultMaxItems)
	}
	h := &Handler{
		games:    games,
		cache:    rc,
		defaults: defaults,
		log:      log,
	}
	h.engines.New = func() any {
		return engine.NewEngine(engine.WithLogger(log.Named("engine")))
	}
	return h
}

func (h *Handler) searchConfig(maxDepth int) engine.SearchConfig {
	cfg := engine.SearchConfig{
		MinDepth: h.defaults.MinDepth,
		MaxDepth: h.defaults.MaxDepth,
		Parallel: h.defaults.Parallel,
		Workers:  h.defaults.Workers,
		UseTT:    h.defaults.UseTT,
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = engine.DefaultMaxDepth
	}
	// 请求只能往浅里调，不能超过配置的上限
	if maxDepth > 0 && maxDepth < cfg.MaxDepth {
		cfg.MaxDepth = maxDepth
	}
	return cfg
}

// 请求没给时间就用默认值；两者都没有就不限时
func (h *Handler) searchContext(parent context.Context, timeMs int64) (context.Context, context.CancelFunc) {
	limit := h.defaults.TimeLimit
	if timeMs > 0 {
		limit = time.Duration(timeMs) * time.Millisecond
	}
	if limit <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, limit)
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	writeJSONStatus(w, status, ErrorResponse{Error: msg})
}

func (h *Handler) gameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, game.ErrGameOver):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Errorw("game store error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "pong"})
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			h.writeError(w, http.StatusBadRequest, "bad json")
			return
		}
	}
	n := req.N
	if n == 0 {
		n = h.defaults.BoardSize
	}
	g, err := h.games.NewGame(r.Context(), n)
	if errors.Is(err, raichu.ErrInvalidSize) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.gameError(w, err)
		return
	}
	writeJSON(w, gameToResponse(g))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	g, err := h.games.Play(r.Context(), req.GameID, dtoToMove(req.Move))
	if err != nil {
		h.gameError(w, err)
		return
	}
	writeJSON(w, gameToResponse(g))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	g, err := h.games.Get(r.Context(), req.GameID)
	if err != nil {
		h.gameError(w, err)
		return
	}
	writeJSON(w, gameToResponse(g))
}

func (h *Handler) handleSuccessors(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	pos, err := req.decode()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	succ := pos.Successors()
	resp := SuccessorsResponse{
		Successors: make([]SuccessorDTO, len(succ)),
		Terminal:   pos.GameOver(),
	}
	for i, s := range succ {
		resp.Successors[i] = SuccessorDTO{Move: moveToDTO(s.Move), Position: s.Pos.Encode()}
	}
	writeJSON(w, resp)
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	// ===== 1. 局面：对局里取，或者从字符串还原 =====
	var pos *raichu.Position
	if req.GameID != "" {
		g, err := h.games.Get(r.Context(), req.GameID)
		if err != nil {
			h.gameError(w, err)
			return
		}
		pos = g.Pos
	} else {
		p, err := req.decode()
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		pos = p
	}

	// ===== 2. 先查缓存 =====
	cfg := h.searchConfig(req.MaxDepth)
	key := cache.Key(pos, cfg.MaxDepth)
	if e, ok, err := h.cache.Get(r.Context(), key); err != nil {
		h.log.Warnw("cache get failed", "key", key, "error", err)
	} else if ok {
		writeJSON(w, h.cachedResponse(pos, e))
		return
	}

	// ===== 3. 搜索，只思考不落子 =====
	ctx, cancel := h.searchContext(r.Context(), req.TimeMs)
	defer cancel()

	eng := h.engines.Get().(*engine.Engine)
	defer h.engines.Put(eng)

	start := time.Now()
	res, ok := eng.Search(ctx, pos, cfg)
	if !ok {
		// 没有走法（或者时间不够一层）
		writeJSON(w, AiMoveResponse{
			BestMove: moveToDTO(raichu.NoMove),
			Position: pos.Encode(),
			ToMove:   pos.SideToMove.String(),
			Status:   game.StatusOf(pos),
			TimeMs:   time.Since(start).Milliseconds(),
		})
		return
	}

	// 只缓存完整搜到 MaxDepth 的结果，或者已经分出胜负的
	if res.Depth == cfg.MaxDepth || res.Position.GameOver() {
		if err := h.cache.Set(r.Context(), key, cache.EntryFromResult(res)); err != nil {
			h.log.Warnw("cache set failed", "key", key, "error", err)
		}
	}

	writeJSON(w, AiMoveResponse{
		BestMove: moveToDTO(res.BestMove),
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		Position: res.Position.Encode(),
		ToMove:   res.Position.SideToMove.String(),
		Status:   game.StatusOf(res.Position),
		TimeMs:   res.TimeUsed.Milliseconds(),
	})
}

func (h *Handler) cachedResponse(pos *raichu.Position, e cache.Entry) AiMoveResponse {
	resp := AiMoveResponse{
		BestMove: moveToDTO(e.BestMove),
		Score:    e.Score,
		Depth:    e.Depth,
		Nodes:    e.Nodes,
		Position: e.Position,
		ToMove:   raichu.Opposite(pos.SideToMove).String(),
		Cached:   true,
	}
	if next, err := raichu.DecodePosition(e.Position, pos.Board.N, raichu.Opposite(pos.SideToMove)); err == nil {
		resp.Status = game.StatusOf(next)
	}
	return resp
}
