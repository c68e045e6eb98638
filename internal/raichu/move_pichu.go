package raichu

// Pichu：向前斜走一格；或斜跳两格吃掉相邻的敌方 Pichu（只能吃 Pichu）
func genPichuMoves(p *Position, from int, moves *[]Move) {
	b := &p.Board
	row, col := b.RowCol(from)
	side := b.Squares[from].Side()
	dr := forwardDir(side)
	enemyPichu := makePiece(opposite(side), PiecePichu)

	for _, dc := range [2]int{-1, +1} {
		r1, c1 := row+dr, col+dc
		if !b.InBounds(r1, c1) {
			continue
		}
		mid := b.At(r1, c1)
		if mid == 0 {
			*moves = append(*moves, Move{From: from, To: b.Index(r1, c1), Capture: NoSquare})
			continue
		}
		if mid != enemyPichu {
			continue
		}
		r2, c2 := row+2*dr, col+2*dc
		if b.InBounds(r2, c2) && b.At(r2, c2) == 0 {
			*moves = append(*moves, Move{From: from, To: b.Index(r2, c2), Capture: b.Index(r1, c1)})
		}
	}
}
