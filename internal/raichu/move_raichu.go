package raichu

// 8 个方向：先直线后斜线
var raichuDirs = [8][2]int{
	{+1, 0}, {-1, 0}, {0, -1}, {0, +1},
	{-1, -1}, {+1, +1}, {-1, +1}, {+1, -1},
}

// Raichu：沿 8 个方向滑行任意格。遇到第一个敌子（任意种类）时，
// 若其后一格为空则可跳吃落在那里；无论吃不吃得到，该方向到此为止。
// 一步最多吃一个子。
func genRaichuMoves(p *Position, from int, moves *[]Move) {
	b := &p.Board
	row, col := b.RowCol(from)
	side := b.Squares[from].Side()

	for _, d := range raichuDirs {
		r, c := row+d[0], col+d[1]
		for b.InBounds(r, c) {
			pc := b.At(r, c)
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: b.Index(r, c), Capture: NoSquare})
				r += d[0]
				c += d[1]
				continue
			}
			if pc.Side() != side {
				lr, lc := r+d[0], c+d[1]
				if b.InBounds(lr, lc) && b.At(lr, lc) == 0 {
					*moves = append(*moves, Move{From: from, To: b.Index(lr, lc), Capture: b.Index(r, c)})
				}
			}
			break
		}
	}
}
