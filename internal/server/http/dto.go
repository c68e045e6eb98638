package httpserver

import (
	"raichu/internal/raichu"
	"raichu/internal/server/game"
)

// 前端用的招法结构；capture 为 -1 表示不吃子
type MoveDTO struct {
	From    int `json:"from"`
	To      int `json:"to"`
	Capture int `json:"capture"`
}

func moveToDTO(m raichu.Move) MoveDTO {
	return MoveDTO{From: m.From, To: m.To, Capture: m.Capture}
}

func dtoToMove(m MoveDTO) raichu.Move {
	return raichu.Move{From: m.From, To: m.To, Capture: raichu.NoSquare}
}

func movesToDTO(ms []raichu.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// 局面相关请求的公共字段：N×N 字符串 + 轮到谁（"w"/"b"）
type PositionRequest struct {
	N        int    `json:"n"`
	Position string `json:"position"`
	ToMove   string `json:"to_move"`
}

func (r PositionRequest) decode() (*raichu.Position, error) {
	side, err := raichu.ParseSide(r.ToMove)
	if err != nil {
		return nil, err
	}
	return raichu.DecodePosition(r.Position, r.N, side)
}

// NewGame 请求，n 为 0 时用配置里的默认大小
type NewGameRequest struct {
	N int `json:"n"`
}

// NewGame / Play / State 都返回这个
type GameResponse struct {
	GameID     string    `json:"game_id"`
	N          int       `json:"n"`
	Position   string    `json:"position"`
	ToMove     string    `json:"to_move"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	History    []MoveDTO `json:"history"`
	Status     string    `json:"status"` // ongoing / white_won / black_won / no_moves
}

func gameToResponse(g *game.GameState) GameResponse {
	return GameResponse{
		GameID:     g.ID,
		N:          g.N,
		Position:   g.Pos.Encode(),
		ToMove:     g.Pos.SideToMove.String(),
		LegalMoves: movesToDTO(g.Pos.GenerateMoves()),
		History:    movesToDTO(g.History),
		Status:     g.Status,
	}
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

// State 请求：前端刷新时用 game_id 来要当前盘面
type StateRequest struct {
	GameID string `json:"game_id"`
}

// AiMoveRequest 请求让 AI 为当前局面算一步（只思考不落子）。
// 给了 game_id 就用该对局的当前局面，否则用 position/n/to_move。
type AiMoveRequest struct {
	PositionRequest
	GameID   string `json:"game_id"`
	MaxDepth int    `json:"max_depth"`
	TimeMs   int64  `json:"time_ms"`
}

type AiMoveResponse struct {
	BestMove MoveDTO `json:"best_move"`
	Score    int     `json:"score"`
	Depth    int     `json:"depth"`
	Nodes    int64   `json:"nodes"`
	Position string  `json:"position"` // AI 落子后局面
	ToMove   string  `json:"to_move"`  // 下一手执棋方
	Status   string  `json:"status"`   // 落子后局面的状态；无棋可走时为 no_moves
	Cached   bool    `json:"cached"`
	TimeMs   int64   `json:"time_ms"`
}

type SuccessorDTO struct {
	Move     MoveDTO `json:"move"`
	Position string  `json:"position"`
}

type SuccessorsResponse struct {
	Successors []SuccessorDTO `json:"successors"`
	Terminal   bool           `json:"terminal"`
}

// websocket 推送：每完成一层一条，最后一条 done=true
type AnalysisMessage struct {
	Depth    int     `json:"depth,omitempty"`
	BestMove MoveDTO `json:"best_move"`
	Position string  `json:"position,omitempty"`
	Score    int     `json:"score"`
	Nodes    int64   `json:"nodes"`
	TimeMs   int64   `json:"time_ms"`
	Done     bool    `json:"done"`
	Error    string  `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
