package game

import (
	"time"

	"raichu/internal/raichu"
)

const (
	StatusOngoing  = "ongoing"
	StatusWhiteWon = "white_won"
	StatusBlackWon = "black_won"
	StatusNoMoves  = "no_moves" // 轮到的一方无棋可走，判负
)

type GameState struct {
	ID        string
	N         int
	Pos       *raichu.Position
	History   []raichu.Move
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusOf 根据局面判断对局状态
func StatusOf(pos *raichu.Position) string {
	switch pos.Winner() {
	case raichu.White:
		return StatusWhiteWon
	case raichu.Black:
		return StatusBlackWon
	}
	if len(pos.GenerateMoves()) == 0 {
		return StatusNoMoves
	}
	return StatusOngoing
}

func (g *GameState) clone() *GameState {
	c := *g
	c.History = append([]raichu.Move(nil), g.History...)
	return &c
}
