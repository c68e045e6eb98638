package engine

import "raichu/internal/raichu"

// 子力权重，等级越高越值钱
var tierWeight = [...]int{
	raichu.PiecePichu:   2,
	raichu.PiecePikachu: 4,
	raichu.PieceRaichu:  8,
}

// Evaluate 从白方视角的子力分：正数白方好，负数黑方好。
func Evaluate(pos *raichu.Position) int {
	counts := pos.Board.Counts()
	score := 0
	for pt, w := range tierWeight {
		score += w * (counts[raichu.White][pt] - counts[raichu.Black][pt])
	}
	return score
}
