package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"raichu/internal/engine"
	"raichu/internal/raichu"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleAnalyze 把迭代加深的每一层结果推给前端。
// 参数走 query：n, position, to_move, max_depth, time_ms
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, _ := strconv.Atoi(q.Get("n"))
	req := PositionRequest{N: n, Position: q.Get("position"), ToMove: q.Get("to_move")}
	pos, err := req.decode()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxDepth, _ := strconv.Atoi(q.Get("max_depth"))
	timeMs, _ := strconv.ParseInt(q.Get("time_ms"), 10, 64)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := h.searchContext(r.Context(), timeMs)
	defer cancel()

	// 客户端断开就停止搜索
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	eng := h.engines.Get().(*engine.Engine)
	defer h.engines.Put(eng)

	start := time.Now()
	for res := range eng.FindBestMove(ctx, pos, h.searchConfig(maxDepth)) {
		msg := AnalysisMessage{
			Depth:    res.Depth,
			BestMove: moveToDTO(res.BestMove),
			Position: res.Position.Encode(),
			Score:    res.Score,
			Nodes:    res.Nodes,
			TimeMs:   res.TimeUsed.Milliseconds(),
		}
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Debugw("analysis client gone", "error", err)
			return
		}
	}

	final := AnalysisMessage{BestMove: moveToDTO(raichu.NoMove), Done: true, TimeMs: time.Since(start).Milliseconds()}
	if err := conn.WriteJSON(final); err != nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}
